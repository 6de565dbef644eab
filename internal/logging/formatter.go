package logging

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/fatih/color"
)

// Renders one record into the bytes written to the stream.
type Formatter interface {
	Format(r slog.Record) []byte
}

// Renders records as single console lines.
//
// A level tag is followed by the message and any attributes as key=value
// pairs. Verbose mode prepends the record timestamp.
type PrettyFormatter struct {
	verbose bool

	debug *color.Color
	info  *color.Color
	warn  *color.Color
	err   *color.Color
	dim   *color.Color
}

// Creates a new [PrettyFormatter], with ANSI colors when colored is true.
func NewPrettyFormatter(colored bool) *PrettyFormatter {
	f := &PrettyFormatter{
		debug: color.New(color.FgHiBlack),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
		dim:   color.New(color.FgHiBlack),
	}

	for _, c := range []*color.Color{f.debug, f.info, f.warn, f.err, f.dim} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return f
}

// Enables or disables timestamps on every line.
func (f *PrettyFormatter) SetVerbose(enabled bool) {
	f.verbose = enabled
}

// Renders a single record as one line.
func (f *PrettyFormatter) Format(r slog.Record) []byte {
	var b bytes.Buffer

	if f.verbose && !r.Time.IsZero() {
		b.WriteString(f.dim.Sprint(r.Time.Format(time.DateTime)))
		b.WriteByte(' ')
	}

	b.WriteString(f.levelColor(r.Level).Sprint(levelTag(r.Level)))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(f.dim.Sprintf("%s=%v", a.Key, a.Value.Resolve()))
		return true
	})

	b.WriteByte('\n')
	return b.Bytes()
}

func (f *PrettyFormatter) levelColor(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return f.err
	case l >= slog.LevelWarn:
		return f.warn
	case l >= slog.LevelInfo:
		return f.info
	default:
		return f.debug
	}
}

// Returns the three-letter tag for a level.
func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WRN"
	case l >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}
