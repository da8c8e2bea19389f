package service

import (
	"context"
	"time"

	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/completion"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/domain"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/imaging"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/parser"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/errors"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/httputil"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

// Encoder turns a validated image file into the payload sent to the completer
type Encoder func(path string) (*imaging.Encoded, error)

// Option configures a Service
type Option func(*Service)

// WithEncoder replaces imaging.Encode
func WithEncoder(enc Encoder) Option {
	return func(s *Service) {
		s.encode = enc
	}
}

// Service orchestrates one extraction: validate → encode → complete → parse
type Service struct {
	completer completion.Completer
	encode    Encoder
	log       *logger.Logger
}

// NewService creates a new extraction service
func NewService(completer completion.Completer, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		completer: completer,
		encode:    imaging.Encode,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract runs the pipeline for the image at path. It never returns an error;
// every failure is folded into a failure envelope. The completion call is
// made only after the image validated and encoded.
func (s *Service) Extract(ctx context.Context, path string) *domain.Result {
	start := time.Now()
	log := s.log
	if requestID := httputil.GetRequestID(ctx); requestID != "" {
		log = log.WithRequestID(requestID)
	}

	if err := imaging.Validate(path); err != nil {
		event := log.Warn().Str("file_path", path)
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			event = event.Str("code", appErr.Code).Str("reason", appErr.Details["reason"])
		}
		event.Msg("rejected file: not a readable image")
		return domain.Failure(domain.MessageInvalidImage)
	}

	img, err := s.encode(path)
	if err != nil {
		log.Error().Err(err).Str("file_path", path).Msg("failed to encode image")
		return domain.Failure(domain.MessageEncodeFailed)
	}

	log.Debug().
		Str("file_path", path).
		Str("mime_type", img.MIMEType).
		Bool("converted", img.Converted).
		Int("payload_size", len(img.Data)).
		Msg("image encoded")

	raw, err := s.completer.Complete(ctx, img)
	if err != nil {
		log.Error().Err(err).
			Str("completer", s.completer.Name()).
			Str("file_path", path).
			Msg("seal/stamp extraction failed")
		return domain.Failure(failureMessage(err))
	}

	fields := parser.CleanJSONOutput(raw, log)

	log.Info().
		Str("completer", s.completer.Name()).
		Str("file_path", path).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("seal/stamp extraction completed")

	return domain.Success(fields)
}

// failureMessage surfaces the cause text of a completion failure
func failureMessage(err error) string {
	var appErr *errors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
