package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/events"
	"github.com/SscSPs/expense_bot/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Publisher events.Publisher
	Now       func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// CurrentTime returns the service clock in UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// PublishEvent hands event to the publisher, logging instead of failing.
func (s *BaseService) PublishEvent(ctx context.Context, event events.Event) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event", slog.String("event_type", string(event.Type)))
	}
}

// wrapStoreError keeps store failures matchable as ErrStoreUnavailable.
func wrapStoreError(msg string, err error) error {
	if errors.Is(err, apperrors.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return apperrors.StoreError(msg, err)
}
