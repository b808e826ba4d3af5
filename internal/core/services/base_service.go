package services

import (
	"context"
	"log/slog"

	"github.com/tradegate/trading_erp/internal/core/domain"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct {
	Authorizer portssvc.CompanyAuthorizerSvc
}

// GetLogger gets the request-scoped logger from context or a default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize checks whether the user holds the capability inside the company.
// With no authorizer configured access is granted, which keeps unit tests and
// development wiring simple.
func (s *BaseService) Authorize(ctx context.Context, userID, companyID string, capability domain.Capability) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeUserAction(ctx, userID, companyID, capability)
	}
	s.LogDebug(ctx, "No company authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
		slog.String("capability", string(capability)))
	return nil
}
