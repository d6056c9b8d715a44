package observe

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pavanmanishd/vector"
)

// ZapObserver logs storage events through a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

var _ vector.Observer = (*ZapObserver)(nil)

// NewZapObserver returns an observer writing to log. A nil logger is
// replaced by zap.NewNop.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapObserver{log: log}
}

// Observe implements vector.Observer.
func (z *ZapObserver) Observe(e vector.Event) {
	level := levelOf(e.Kind)
	ce := z.log.Check(level, "vector "+e.Kind.String())
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("len", e.Len),
		zap.Int("old_cap", e.OldCap),
		zap.Bool("pinned", e.Pinned),
	}
	if e.Kind != vector.EventRelease {
		fields = append(fields, zap.Int("new_cap", e.NewCap))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	ce.Write(fields...)
}

func levelOf(k vector.EventKind) zapcore.Level {
	switch k {
	case vector.EventGrowFailed:
		return zap.WarnLevel
	case vector.EventShrinkFailed:
		return zap.InfoLevel
	}
	return zap.DebugLevel
}
