package diag

import "go.uber.org/zap"

// ZapSink emits diagnostics as structured warn-level log entries. It is
// constructed with the caller's *zap.Logger; the package has no
// package-level logger or default ZapSink.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps logger (which must not be nil) as a Sink.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Emit implements Sink.
func (s *ZapSink) Emit(d Diagnostic) {
	fields := []zap.Field{
		zap.String("record", d.RecordName),
		zap.Int64("pad_size", d.PadSize),
		zap.Bool("pad_is_bits", d.PadIsBits),
	}
	if d.FieldName != "" {
		fields = append(fields, zap.String("field", d.FieldName))
	}
	s.logger.Warn(d.Kind.String(), fields...)
}
