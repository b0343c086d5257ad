package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/cityvoice/cityvoice-backend/internal/logger"
)

// RecoveryHandler запускает фоновые горутины с перехватом panic.
type RecoveryHandler struct{}

// SafeGo запускает горутину с обработкой panic.
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Errorf("panic в горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Errorf("panic в горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn(ctx)
	}()
}

// DefaultRecoveryHandler — глобальный обработчик.
var DefaultRecoveryHandler = &RecoveryHandler{}

// SafeGo запускает безопасную горутину через глобальный обработчик.
func SafeGo(fn func()) {
	DefaultRecoveryHandler.SafeGo(fn)
}

// SafeGoWithContext запускает безопасную горутину с контекстом.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, fn)
}
