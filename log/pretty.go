package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// palette holds the styles used by the pretty handlers. A palette bound to a
// writer that is not a terminal, or built with color disabled, is plain.
type palette struct {
	plain bool
	key   lipgloss.Style
	str   lipgloss.Style
	num   lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	null  lipgloss.Style
	time  lipgloss.Style
	dur   lipgloss.Style
	level map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		plain: r.ColorProfile() == termenv.Ascii,
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		null:  fg("8"),
		time:  fg("4"),
		dur:   fg("5"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3"),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) paint(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}

	return s.Render(text)
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// prettyBase carries the state shared by both pretty handlers.
type prettyBase struct {
	opts    slog.HandlerOptions
	mu      *sync.Mutex
	w       io.Writer
	palette palette
	attrs   []slog.Attr
	groups  []string
}

func (h prettyBase) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

// nest wraps attrs in the currently open groups.
func (h prettyBase) nest(attrs []slog.Attr) []slog.Attr {
	for i := len(h.groups) - 1; i >= 0; i-- {
		if len(attrs) == 0 {
			return nil
		}

		attrs = []slog.Attr{{Key: h.groups[i], Value: slog.GroupValue(attrs...)}}
	}

	return attrs
}

func (h prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	h.attrs = append(slices.Clip(h.attrs), h.nest(attrs)...)

	return h
}

func (h prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		h.groups = append(slices.Clip(h.groups), name)
	}

	return h
}

// header returns the time, level, source and message of r as attributes,
// passed through ReplaceAttr.
func (h prettyBase) header(r slog.Record) []slog.Attr {
	var out []slog.Attr

	if !r.Time.IsZero() {
		out = append(out, slog.Time(slog.TimeKey, r.Time))
	}

	out = append(out, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			out = append(out, slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	out = append(out, slog.String(slog.MessageKey, r.Message))

	if h.opts.ReplaceAttr == nil {
		return out
	}

	kept := out[:0]
	for _, a := range out {
		if a = h.opts.ReplaceAttr(nil, a); a.Key != "" {
			kept = append(kept, a)
		}
	}

	return kept
}

// body returns the handler's own attributes followed by the record's.
func (h prettyBase) body(r slog.Record) []slog.Attr {
	recs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		recs = append(recs, a)

		return true
	})

	return append(slices.Clip(h.attrs), h.nest(recs)...)
}

func (h prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler writes one line of unquoted key=value pairs per record.
// Group members are flattened into dotted keys.
type prettyTextHandler struct {
	prettyBase
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *prettyTextHandler {
	return &prettyTextHandler{prettyBase{
		opts:    *opts,
		mu:      &sync.Mutex{},
		w:       w,
		palette: newPalette(w, color),
	}}
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		h.writeAttr(buf, "", a)
	}

	for _, a := range h.body(r) {
		h.writeAttr(buf, "", a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if isEmpty(a) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, m := range a.Value.Group() {
			h.writeAttr(buf, prefix, m)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.palette.paint(h.palette.key, prefix+a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.value(a.Key, a.Value))
}

func (h *prettyTextHandler) value(key string, v slog.Value) string {
	p := h.palette

	switch v.Kind() {
	case slog.KindString:
		if key == slog.LevelKey && len(h.groups) == 0 {
			return p.paint(p.levelStyle(slog.Level(ParseLevel(v.String()))), v.String())
		}

		return p.paint(p.str, v.String())
	case slog.KindInt64:
		return p.paint(p.num, strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.paint(p.num, strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.paint(p.num, strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.paint(p.yes, "true")
		}

		return p.paint(p.no, "false")
	case slog.KindDuration:
		return p.paint(p.dur, v.Duration().String())
	case slog.KindTime:
		return p.paint(p.time, v.Time().Format(time.RFC3339))
	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			return p.paint(p.levelStyle(level), strings.ToUpper(Level(level).String()))
		}

		if err, ok := v.Any().(error); ok {
			return p.paint(p.no, err.Error())
		}
	}

	return p.paint(p.str, v.String())
}

// prettyJSONHandler writes each record as an indented JSON object. Groups
// become nested objects.
type prettyJSONHandler struct {
	prettyBase
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *prettyJSONHandler {
	return &prettyJSONHandler{prettyBase{
		opts:    *opts,
		mu:      &sync.Mutex{},
		w:       w,
		palette: newPalette(w, color),
	}}
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	h.writeObject(buf, 0, append(h.header(r), h.body(r)...))

	return h.write(buf)
}

func (h *prettyJSONHandler) writeObject(buf *bytes.Buffer, depth int, attrs []slog.Attr) {
	buf.WriteByte('{')

	first := true
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if isEmpty(a) {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth+1))
		buf.WriteString(h.palette.paint(h.palette.key, quote(a.Key)))
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			h.writeObject(buf, depth+1, a.Value.Group())

			continue
		}

		buf.WriteString(h.value(a.Key, a.Value))
	}

	if !first {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth))
	}

	buf.WriteByte('}')
}

func (h *prettyJSONHandler) value(key string, v slog.Value) string {
	p := h.palette

	switch v.Kind() {
	case slog.KindString:
		if key == slog.LevelKey {
			return p.paint(p.levelStyle(slog.Level(ParseLevel(v.String()))), quote(v.String()))
		}

		return p.paint(p.str, quote(v.String()))
	case slog.KindInt64:
		return p.paint(p.num, strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.paint(p.num, strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		f := v.Float64()
		if b, err := json.Marshal(f); err == nil {
			return p.paint(p.num, string(b))
		}

		return p.paint(p.str, quote(strconv.FormatFloat(f, 'g', -1, 64)))
	case slog.KindBool:
		if v.Bool() {
			return p.paint(p.yes, "true")
		}

		return p.paint(p.no, "false")
	case slog.KindDuration:
		return p.paint(p.dur, quote(v.Duration().String()))
	case slog.KindTime:
		return p.paint(p.time, quote(v.Time().Format(time.RFC3339Nano)))
	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return p.paint(p.null, "null")
		case slog.Level:
			return p.paint(p.levelStyle(a), quote(strings.ToUpper(Level(a).String())))
		case error:
			return p.paint(p.no, quote(a.Error()))
		}

		if b, err := json.Marshal(v.Any()); err == nil {
			return p.paint(p.str, string(b))
		}
	}

	return p.paint(p.str, quote(v.String()))
}

func isEmpty(a slog.Attr) bool {
	return a.Key == "" && a.Value.Any() == nil
}

func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}

	return string(b)
}
