package log

import (
	"io"

	"github.com/rs/zerolog"

	gperr "github.com/YuminosukeSato/gpgo/pkg/errors"
)

// EnableZerologWarnings routes library warnings (clamped variances, jitter
// fallbacks) through a zerolog logger writing to w. Warning types that
// implement zerolog.LogObjectMarshaler are emitted as structured objects.
func EnableZerologWarnings(w io.Writer) {
	logger := zerolog.New(w).With().Timestamp().Logger()
	gperr.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.Object("warning", obj).Msg(warning.Error())
			return
		}
		ev.Err(warning).Msg("gpgo warning")
	})
}

// DisableZerologWarnings restores the plain warning handler.
func DisableZerologWarnings() {
	gperr.SetZerologWarnFunc(nil)
}
