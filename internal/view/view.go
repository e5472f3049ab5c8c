// Package view turns history entries into display rows.
package view

import (
	"fmt"
	"time"

	"qrlog/internal/store"
)

// PreviewLength is how many characters of content a row shows.
const PreviewLength = 50

const ellipsis = "..."

// Row is a render-ready projection of one history entry.
type Row struct {
	Index   int
	Kind    store.Kind
	Label   string
	Preview string
	Time    string
}

// Locale carries the per-language strings used when rendering.
type Locale struct {
	Scan       string
	Generate   string
	TimeLayout string
	Empty      string
}

var Locales = map[string]Locale{
	"en": {
		Scan:       "Scan",
		Generate:   "Generate",
		TimeLayout: "1/2/2006, 3:04:05 PM",
		Empty:      "No history yet",
	},
	"zh": {
		Scan:       "扫描",
		Generate:   "生成",
		TimeLayout: "2006/1/2 15:04:05",
		Empty:      "暂无历史记录",
	},
}

// Renderer formats entries for one locale and time zone.
type Renderer struct {
	locale Locale
	loc    *time.Location
}

// NewRenderer returns a Renderer for the named locale. A nil loc means UTC.
func NewRenderer(locale string, loc *time.Location) (*Renderer, error) {
	l, ok := Locales[locale]
	if !ok {
		return nil, fmt.Errorf("unknown locale %q", locale)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{locale: l, loc: loc}, nil
}

// Render projects entries into rows, preserving order.
func (r *Renderer) Render(entries []store.Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, Row{
			Index:   i,
			Kind:    e.Kind,
			Label:   r.Label(e.Kind),
			Preview: Preview(e.Content),
			Time:    r.FormatTime(e.RecordedAt),
		})
	}
	return rows
}

// Label names a kind. Anything that is not a scan counts as a generation.
func (r *Renderer) Label(k store.Kind) string {
	if k == store.KindScan {
		return r.locale.Scan
	}
	return r.locale.Generate
}

func (r *Renderer) FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(r.loc).Format(r.locale.TimeLayout)
}

// Preview cuts content to its first PreviewLength characters and marks the
// cut with an ellipsis. The cut is exact, not word-aware.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + ellipsis
}
