package view

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"qrlog/internal/store"

	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short", "hello", "hello"},
		{"exactly fifty", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"fifty one", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{"mid word cut", strings.Repeat("word ", 12), strings.Repeat("word ", 10) + "..."},
		{"multibyte", strings.Repeat("码", 60), strings.Repeat("码", 50) + "..."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Preview(tt.content))
		})
	}
}

func TestPreview_SeventyThreeChars(t *testing.T) {
	content := "https://example.com/" + strings.Repeat("x", 53)
	require.Len(t, content, 73)

	got := Preview(content)
	require.True(t, strings.HasSuffix(got, "..."))
	require.Equal(t, content[:50], strings.TrimSuffix(got, "..."))
	require.Len(t, []rune(strings.TrimSuffix(got, "...")), 50)
}

func TestRender(t *testing.T) {
	r, err := NewRenderer("en", time.UTC)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 14, 4, 5, 0, time.UTC)
	rows := r.Render([]store.Entry{
		{Content: "hello-scan", Kind: store.KindScan, RecordedAt: at},
		{Content: "https://example.com", Kind: store.KindGenerate, RecordedAt: at.Add(-time.Hour)},
		{Content: "legacy", Kind: "other"},
	})

	require.Equal(t, []Row{
		{Index: 0, Kind: store.KindScan, Label: "Scan", Preview: "hello-scan", Time: "3/1/2025, 2:04:05 PM"},
		{Index: 1, Kind: store.KindGenerate, Label: "Generate", Preview: "https://example.com", Time: "3/1/2025, 1:04:05 PM"},
		{Index: 2, Kind: "other", Label: "Generate", Preview: "legacy", Time: "-"},
	}, rows)
}

func TestRender_IsPure(t *testing.T) {
	r, err := NewRenderer("zh", time.FixedZone("CST", 8*3600))
	require.NoError(t, err)

	entries := []store.Entry{{Content: "x", Kind: store.KindScan, RecordedAt: time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)}}
	first := r.Render(entries)
	second := r.Render(entries)
	require.Equal(t, first, second)
	require.Equal(t, "扫描", first[0].Label)
	require.Equal(t, "2025/3/2 04:00:00", first[0].Time)
}

func TestNewRenderer_UnknownLocale(t *testing.T) {
	_, err := NewRenderer("fr", nil)
	require.Error(t, err)
}

func newHistory(t *testing.T) *store.History {
	t.Helper()
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h, err := store.Open(store.NewMemorySlot(),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		store.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestPanel_RendersOnlyWhenActive(t *testing.T) {
	h := newHistory(t)
	r, err := NewRenderer("en", time.UTC)
	require.NoError(t, err)
	var out bytes.Buffer
	p := NewPanel(h, r, &out)
	defer p.Close()

	h.Append("while hidden", store.KindScan)
	require.Empty(t, out.String())

	p.SetActive(true)
	require.Empty(t, out.String())
	p.Refresh()
	require.Contains(t, out.String(), "while hidden")

	out.Reset()
	h.Append("while shown", store.KindGenerate)
	require.Contains(t, out.String(), "while shown")
	require.Contains(t, out.String(), "Generate")

	out.Reset()
	p.SetActive(false)
	h.Append("hidden again", store.KindScan)
	require.Empty(t, out.String())
}

func TestPanel_RemoveAndClearAll(t *testing.T) {
	h := newHistory(t)
	r, err := NewRenderer("en", time.UTC)
	require.NoError(t, err)
	var out bytes.Buffer
	p := NewPanel(h, r, &out)
	defer p.Close()

	h.Append("a", store.KindScan)
	h.Append("b", store.KindScan)
	h.Append("c", store.KindScan)
	p.SetActive(true)

	out.Reset()
	require.NoError(t, p.Remove(1))
	require.Contains(t, out.String(), " c\n")
	require.NotContains(t, out.String(), " b\n")
	require.Equal(t, []string{"c", "a"}, previews(p.List()))

	require.ErrorIs(t, p.Remove(7), store.ErrIndexOutOfRange)

	out.Reset()
	p.ClearAll()
	require.Equal(t, "No history yet\n", out.String())
	require.Empty(t, p.List())
}

func TestPanel_CloseStopsRendering(t *testing.T) {
	h := newHistory(t)
	r, err := NewRenderer("en", time.UTC)
	require.NoError(t, err)
	var out bytes.Buffer
	p := NewPanel(h, r, &out)
	p.SetActive(true)
	p.Close()

	out.Reset()
	h.Append("after close", store.KindScan)
	require.Empty(t, out.String())
}

func previews(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Preview)
	}
	return out
}
