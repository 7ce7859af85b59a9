// Package env loads adapter configuration structs from the process
// environment, optionally seeded from a dotenv file.
package env

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const DefaultEnvFile = ".env"

// InitConfig fills config from environment variables according to its
// envconfig tags. When no files are given, DefaultEnvFile is loaded
// first; a missing file is not an error, real environment variables
// always win over file values.
func InitConfig(config any, files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	// nolint:errcheck // dotenv files are optional
	_ = godotenv.Load(files...)

	if err := envconfig.Process("", config); err != nil {
		return errors.Wrap(err, "failed to envconfig.Process")
	}

	return nil
}
