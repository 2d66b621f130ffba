package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/ignatzorin/marketplace-client/internal/logger"
)

// SafeGo запускает горутину с перехватом panic. Используется для
// fire-and-forget операций (отметка прочитанного, ws-насосы), падение
// которых не должно ронять приложение.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("panic в горутине: %v\n%s", r, debug.Stack())
				}
			}
		}()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и перехватом panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	SafeGo(func() {
		fn(ctx)
	})
}
