package sweego

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pure-golang/mail-adapters/env"
	"github.com/pure-golang/mail-adapters/mail"
)

var _ mail.Mailer = (*Sender)(nil)

// Sender implements mail.Mailer using the Sweego REST API.
// It is safe for concurrent use: each Send builds its own payload and
// performs its own request; the only shared state is the immutable
// config, the http.Client and the closed flag.
type Sender struct {
	mx     sync.RWMutex
	cfg    Config
	client *http.Client
	logger *slog.Logger
	closed bool
}

// SenderOptions contains options for creating a Sender.
type SenderOptions struct {
	Logger *slog.Logger

	// HTTPClient performs the send requests. The adapter imposes no
	// timeout of its own; configure one here if needed.
	HTTPClient *http.Client
}

// NewSender creates a new Sweego Sender.
func NewSender(cfg Config, options *SenderOptions) *Sender {
	if options == nil {
		options = &SenderOptions{}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.HTTPClient == nil {
		options.HTTPClient = http.DefaultClient
	}

	logger := options.Logger.WithGroup("sweego")
	logger.Info("Sweego sender initialized", "endpoint", cfg.GetEndpoint(), "dry_run", cfg.DryRun)

	return &Sender{
		cfg:    cfg,
		client: options.HTTPClient,
		logger: logger,
		closed: false,
	}
}

// NewDefaultSender creates a Sender configured from the environment
// (SWEEGO_* variables, optionally via a .env file).
func NewDefaultSender() (*Sender, error) {
	var cfg Config
	if err := env.InitConfig(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load sweego config")
	}

	return NewSender(cfg, nil), nil
}

// Name returns the provider identifier.
func (s *Sender) Name() string {
	return providerName
}

// sendResponse is the success shape of the Sweego send endpoint.
type sendResponse struct {
	Channel       string              `json:"channel"`
	Provider      string              `json:"provider"`
	SwgUIDs       map[string][]string `json:"swg_uids"`
	TransactionID string              `json:"transaction_id"`
}

// Send delivers a single email through the Sweego API.
func (s *Sender) Send(ctx context.Context, email mail.Email) (*mail.Result, error) {
	ctx, span := tracer.Start(ctx, "Sweego.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("mail.provider", providerName),
		attribute.String("mail.subject", email.Subject),
		attribute.Int("mail.to_count", len(email.To)),
		attribute.Int("mail.attachment_count", len(email.Attachments)),
		attribute.Bool("mail.dry_run", s.cfg.DryRun),
	)

	start := time.Now()

	s.mx.RLock()
	closed := s.closed
	s.mx.RUnlock()

	if closed {
		err := errors.New("sender is closed")
		recordError(span, err)
		return nil, err
	}

	p, err := s.buildPayload(email)
	if err != nil {
		recordError(span, err)
		recordSend(statusInvalid, time.Since(start).Seconds())
		return nil, err
	}

	result, err := s.post(ctx, p)
	if err != nil {
		recordError(span, err)
		if apiErr, ok := AsAPIError(err); ok {
			span.SetAttributes(attribute.Int("http.status_code", apiErr.StatusCode))
			recordSend(statusRejected, time.Since(start).Seconds())
		} else {
			recordSend(statusError, time.Since(start).Seconds())
		}
		return nil, err
	}

	recordSend(statusOK, time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "")

	s.logger.Debug("email accepted",
		"transaction_id", result.TransactionID,
		"recipients", len(email.To),
		"dry_run", s.cfg.DryRun,
	)

	return result, nil
}

// post performs the single send request and classifies the response by
// its status code: 200 carries the success shape, anything else the
// error shape. No retries.
func (s *Sender) post(ctx context.Context, p *payload) (*mail.Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GetEndpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Api-Key", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call sweego API")
	}
	defer func() {
		// The body has been fully consumed by the decoder at this
		// point; a close failure leaves nothing to recover.
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Detail []ErrorDetail `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
			return nil, errors.Wrapf(err, "failed to decode error response (status %d)", resp.StatusCode)
		}

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Details:    errBody.Detail,
		}
	}

	var res sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	return &mail.Result{
		Provider:      res.Provider,
		Channel:       res.Channel,
		TransactionID: res.TransactionID,
		MessageIDs:    res.SwgUIDs,
	}, nil
}

// Close closes the sender. Further Send calls fail.
func (s *Sender) Close() error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Info("Sweego sender closed")
	return nil
}
