package sheet

import (
	"fmt"
	"io"
	"os"
)

// SetDebugMode enables or disables debug mode. When enabled, release
// decisions, refused drags, snap changes and transition steps are logged to
// DebugOutput, and using a disposed sheet panics. Nested sheets created
// afterwards inherit the setting.
func (s *Sheet) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugf writes one "[sheet] ..." line when debug mode is on. Nested sheets
// tag their lines with their depth.
func (s *Sheet) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	var w io.Writer = os.Stderr
	if s.DebugOutput != nil {
		w = s.DebugOutput
	}
	prefix := "[sheet] "
	if d := s.nested.Depth(); d > 0 {
		prefix = fmt.Sprintf("[sheet:%d] ", d)
	}
	_, _ = fmt.Fprintf(w, prefix+format+"\n", args...)
}

// usable reports whether the sheet may still be used. In debug mode, using
// a disposed sheet panics with a descriptive message instead.
func (s *Sheet) usable(op string) bool {
	if !s.disposed {
		return true
	}
	if s.debug {
		panic(fmt.Sprintf("sheet debug: %s on disposed sheet (depth %d)", op, s.nested.Depth()))
	}
	return false
}
