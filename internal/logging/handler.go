package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

// A reconfigurable slog handler.
//
// Records received before the first Flush are buffered, so logging can start
// before the command line has decided the final level, formatter, and stream.
// Flush replays the buffer through the current configuration and switches the
// handler to direct writes.
type Handler interface {
	slog.Handler

	// Sets the minimum level emitted to the stream.
	SetLevel(level slog.Level)

	// Sets the formatter used to render records.
	SetFormatter(f Formatter)

	// Sets the destination stream.
	SetStream(w io.Writer)

	// Replays buffered records and switches the handler to direct writes.
	Flush()
}

// Creates a new [Handler] that buffers records until the first Flush.
//
// The handler starts at level info, rendering with an uncolored
// [PrettyFormatter] to stderr.
func NewHandler() Handler {
	return &handler{
		state: &state{
			level:     slog.LevelInfo,
			formatter: NewPrettyFormatter(false),
			stream:    os.Stderr,
			buffering: true,
		},
	}
}

// Configuration and buffer shared between a root handler and all of its
// WithAttrs/WithGroup derivatives.
type state struct {
	mu        sync.Mutex
	level     slog.Level
	formatter Formatter
	stream    io.Writer
	buffering bool
	buffered  []slog.Record
}

// Renders a record to the stream. Callers hold the state lock.
func (s *state) write(r slog.Record) error {
	_, err := s.stream.Write(s.formatter.Format(r))
	return err
}

type handler struct {
	state  *state
	attrs  []slog.Attr
	groups []string
}

// Reports whether a record at the given level would be handled.
//
// While buffering, every record is accepted; the level filter is applied when
// the buffer is replayed, after the final level is known.
func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if h.state.buffering {
		return true
	}
	return level >= h.state.level
}

// Buffers or writes a single record.
func (h *handler) Handle(_ context.Context, r slog.Record) error {
	rec := h.fold(r)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if h.state.buffering {
		h.state.buffered = append(h.state.buffered, rec)
		return nil
	}
	if rec.Level < h.state.level {
		return nil
	}
	return h.state.write(rec)
}

// Returns a derived handler carrying additional attributes.
func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	d := h.clone()
	for _, a := range attrs {
		d.attrs = append(d.attrs, qualify(d.groups, a))
	}
	return d
}

// Returns a derived handler nesting subsequent attributes under name.
func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	d := h.clone()
	d.groups = append(d.groups, name)
	return d
}

// Sets the minimum level emitted to the stream.
func (h *handler) SetLevel(level slog.Level) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.level = level
}

// Sets the formatter used to render records.
func (h *handler) SetFormatter(f Formatter) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.formatter = f
}

// Sets the destination stream.
func (h *handler) SetStream(w io.Writer) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.stream = w
}

// Replays buffered records and switches the handler to direct writes.
//
// Buffered records below the configured level are dropped. Write errors during
// the replay are ignored; there is no caller to surface them to.
func (h *handler) Flush() {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.buffering = false
	for _, rec := range h.state.buffered {
		if rec.Level >= h.state.level {
			h.state.write(rec)
		}
	}
	h.state.buffered = nil
}

// Returns a copy of the record with the handler's attributes prepended and
// group prefixes applied to the record's own attributes.
func (h *handler) fold(r slog.Record) slog.Record {
	if len(h.attrs) == 0 && len(h.groups) == 0 {
		return r.Clone()
	}

	rec := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	rec.AddAttrs(h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttrs(qualify(h.groups, a))
		return true
	})
	return rec
}

func (h *handler) clone() *handler {
	return &handler{
		state:  h.state,
		attrs:  slices.Clip(h.attrs),
		groups: slices.Clip(h.groups),
	}
}

// Prefixes an attribute key with the open group names, dot-separated.
func qualify(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 || a.Key == "" {
		return a
	}
	return slog.Attr{Key: strings.Join(groups, ".") + "." + a.Key, Value: a.Value}
}
