package sweego

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lognoop "github.com/pure-golang/mail-adapters/logger/noop"
	"github.com/pure-golang/mail-adapters/mail"
)

func testLogger() *slog.Logger {
	return lognoop.NewNoop()
}

// fakeAPI is an in-process stand-in for the Sweego send endpoint.
type fakeAPI struct {
	server   *httptest.Server
	requests atomic.Int64

	lastBody   []byte
	lastAPIKey string

	status   int
	response string
}

func newFakeAPI(t *testing.T, status int, response string) *fakeAPI {
	t.Helper()

	f := &fakeAPI{status: status, response: response}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		f.lastAPIKey = r.Header.Get("Api-Key")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		f.lastBody = body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.response))
	}))
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeAPI) sender(cfg Config) *Sender {
	cfg.Endpoint = f.server.URL
	return NewSender(cfg, &SenderOptions{Logger: testLogger()})
}

func TestNewSender_Defaults(t *testing.T) {
	cfg := Config{
		APIKey:    "key",
		FromEmail: "from@example.com",
	}

	sender := NewSender(cfg, nil)

	assert.NotNil(t, sender)
	assert.Equal(t, "key", sender.cfg.APIKey)
	assert.Equal(t, http.DefaultClient, sender.client)
	assert.Equal(t, DefaultEndpoint, sender.cfg.GetEndpoint())

	err := sender.Close()
	assert.NoError(t, err)
}

func TestNewDefaultSender_FromEnv(t *testing.T) {
	t.Setenv("SWEEGO_API_KEY", "env-key")
	t.Setenv("SWEEGO_FROM_EMAIL", "env@example.com")
	t.Setenv("SWEEGO_FROM_NAME", "Env Sender")
	t.Setenv("SWEEGO_DRY_RUN", "true")

	sender, err := NewDefaultSender()
	require.NoError(t, err)

	assert.Equal(t, "env-key", sender.cfg.APIKey)
	assert.Equal(t, "env@example.com", sender.cfg.FromEmail)
	assert.Equal(t, "Env Sender", sender.cfg.FromName)
	assert.True(t, sender.cfg.DryRun)
}

func TestNewDefaultSender_MissingAPIKey(t *testing.T) {
	// t.Setenv registers the restore, the unset makes the required
	// variable genuinely missing for envconfig.
	t.Setenv("SWEEGO_API_KEY", "")
	require.NoError(t, os.Unsetenv("SWEEGO_API_KEY"))
	t.Setenv("SWEEGO_FROM_EMAIL", "env@example.com")

	_, err := NewDefaultSender()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load sweego config")
}

func TestSender_Name(t *testing.T) {
	sender := NewSender(Config{APIKey: "key", FromEmail: "from@example.com"}, &SenderOptions{Logger: testLogger()})
	assert.Equal(t, "sweego", sender.Name())
}

func TestSender_Send_Success(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK,
		`{"channel":"email","provider":"sweego","swg_uids":{},"transaction_id":"abc123"}`)

	sender := api.sender(Config{
		APIKey:    "secret-key",
		FromEmail: "default@zapal.tech",
		FromName:  "Default",
		DryRun:    true,
	})

	res, err := sender.Send(context.Background(), mail.Email{
		From:    `"Zapal" <hello+from@zapal.tech>`,
		To:      []string{`"Zapal" <hello+to@zapal.tech>`},
		Subject: "This was sent on init",
		Text:    "This is my message body",
		HTML:    "<p>This is my message body</p>",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "sweego", res.Provider)
	assert.Equal(t, "email", res.Channel)
	assert.Equal(t, "abc123", res.TransactionID)
	assert.Empty(t, res.MessageIDs)

	assert.Equal(t, "secret-key", api.lastAPIKey)
	assert.JSONEq(t, `{
		"provider": "sweego",
		"channel": "email",
		"from": {"email": "hello+from@zapal.tech", "name": "Zapal"},
		"recipients": [{"email": "hello+to@zapal.tech", "name": "Zapal"}],
		"subject": "This was sent on init",
		"message-txt": "This is my message body",
		"message-html": "<p>This is my message body</p>",
		"dry-run": true
	}`, string(api.lastBody))
}

func TestSender_Send_ProviderRejects(t *testing.T) {
	api := newFakeAPI(t, http.StatusUnprocessableEntity,
		`{"detail":[{"msg":"bad field","type":"validation_error"}]}`)

	sender := api.sender(Config{APIKey: "key", FromEmail: "from@example.com"})

	res, err := sender.Send(context.Background(), mail.Email{To: []string{"to@example.com"}})
	require.Error(t, err)
	assert.Nil(t, res)

	assert.Equal(t,
		`Error sending email: 422 Unprocessable Entity. Type: "validation_error", Message: "bad field"`,
		err.Error(),
	)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
}

func TestSender_Send_InvalidAttachment_NoRequest(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)

	sender := api.sender(Config{APIKey: "key", FromEmail: "from@example.com"})

	_, err := sender.Send(context.Background(), mail.Email{
		To:          []string{"to@example.com"},
		Attachments: []mail.Attachment{{Filename: "broken.txt"}},
	})

	require.Error(t, err)
	assert.True(t, IsInvalidAttachment(err))
	assert.Equal(t, int64(0), api.requests.Load(), "no request must be made for a malformed attachment")
}

func TestSender_Send_MalformedSuccessBody(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `not json`)

	sender := api.sender(Config{APIKey: "key", FromEmail: "from@example.com"})

	_, err := sender.Send(context.Background(), mail.Email{To: []string{"to@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestSender_Send_MalformedErrorBody(t *testing.T) {
	api := newFakeAPI(t, http.StatusBadGateway, `<html>upstream</html>`)

	sender := api.sender(Config{APIKey: "key", FromEmail: "from@example.com"})

	_, err := sender.Send(context.Background(), mail.Email{To: []string{"to@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode error response")
	assert.Contains(t, err.Error(), "502")
}

func TestSender_Send_WhenClosed(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)

	sender := api.sender(Config{APIKey: "key", FromEmail: "from@example.com"})
	require.NoError(t, sender.Close())

	_, err := sender.Send(context.Background(), mail.Email{To: []string{"to@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
	assert.Equal(t, int64(0), api.requests.Load())
}

func TestSender_Send_ContextCanceled(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)

	sender := api.sender(Config{APIKey: "key", FromEmail: "from@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sender.Send(ctx, mail.Email{To: []string{"to@example.com"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSender_CloseTwice(t *testing.T) {
	sender := NewSender(Config{APIKey: "key", FromEmail: "from@example.com"}, &SenderOptions{Logger: testLogger()})

	assert.NoError(t, sender.Close())
	assert.NoError(t, sender.Close())
}
