package carousel

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/timing"
)

// TransitionLogger is a hook that logs controller transitions. Automatic
// advances are logged at debug level, everything else at info.
type TransitionLogger struct {
	logger *zap.Logger
}

// NewTransitionLogger creates a TransitionLogger.
func NewTransitionLogger(logger *zap.Logger) *TransitionLogger {
	return &TransitionLogger{logger: logger}
}

// Func logs the transition carried by ctx.
func (h *TransitionLogger) Func(ctx hooking.HookCtx) {
	tr, ok := ctx.Item.(Transition)
	if !ok {
		return
	}

	level := zapcore.InfoLevel
	if tr.Kind == TransitionAdvance {
		level = zapcore.DebugLevel
	}

	fields := []zap.Field{
		zap.Stringer("kind", tr.Kind),
		zap.Int("from", tr.From),
		zap.Int("to", tr.To),
		zap.Uint64("time_ms", uint64(tr.Time)),
	}

	if named, ok := ctx.Domain.(timing.Named); ok {
		fields = append(fields, zap.String("controller", named.Name()))
	}

	h.logger.Log(level, "carousel transition", fields...)
}
