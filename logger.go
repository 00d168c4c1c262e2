package baseband

import "go.uber.org/zap"

// Logger is the leveled logger used for soft warnings (such as ClockSkew
// during frame-rate inference) that this module's packages never escalate
// to an error. A nil *zap.SugaredLogger is valid everywhere and discards
// messages; callers that want visibility pass their own, exactly as the
// reader/writer of a stream is supplied by the caller rather than opened by
// this module.
type Logger = *zap.SugaredLogger

// NopLogger returns a Logger that discards everything, for callers that
// don't want soft warnings surfaced anywhere.
func NopLogger() Logger {
	return zap.NewNop().Sugar()
}

// Warn logs a soft-warning message if l is non-nil, and is a no-op
// otherwise. Every soft-warning call site in this module (the ClockSkew
// warning in vdif.InferFrameRate) goes through Warn so a nil Logger never
// panics.
func Warn(l Logger, msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.Warnw(msg, kv...)
}
