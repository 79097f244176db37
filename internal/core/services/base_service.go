package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/core/domain"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/middleware"
)

// forbidden builds the standard scope-denial error.
func forbidden(resource domain.Resource, action domain.Action, role domain.Role) error {
	return fmt.Errorf("%w: %s %s denied for role %s", apperrors.ErrForbidden, action, resource, role)
}

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
