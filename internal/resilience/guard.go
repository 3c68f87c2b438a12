package resilience

import (
	"context"
	"runtime/debug"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrPanic is wrapped around values recovered by Guard.
var ErrPanic = eris.New("recovered panic")

// Guard runs fn and converts a panic into an error wrapping ErrPanic.
func Guard[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			val = zero
			err = eris.Wrapf(ErrPanic, "%s: %v", name, r)
			zap.L().Error("resilience: recovered panic",
				zap.String("stage", name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	return fn(ctx)
}
