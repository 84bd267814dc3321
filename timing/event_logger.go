package timing

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/novaera/showcase/hooking"
)

// EventLogger is a hook that logs the event it is given. Attached with
// hooking.AtPositions(logger, HookPosBeforeEvent) it logs each event once,
// before it is handled.
type EventLogger struct {
	logger *zap.Logger
}

// NewEventLogger returns a new EventLogger which writes to the given logger
// at debug level.
func NewEventLogger(logger *zap.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	fields := []zap.Field{
		zap.Uint64("time_ms", uint64(evt.Time())),
		zap.String("event", reflect.TypeOf(evt).String()),
		zap.String("id", evt.ID()),
	}

	if named, ok := evt.Handler().(Named); ok {
		fields = append(fields, zap.String("handler", named.Name()))
	}

	h.logger.Debug("event", fields...)
}
