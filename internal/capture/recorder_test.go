package capture

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"qrlog/internal/store"

	"github.com/stretchr/testify/require"
)

func newRecorder(t *testing.T) (*Recorder, *store.History) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := store.Open(store.NewMemorySlot(), store.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return NewRecorder(h, logger), h
}

func TestOnDecode_DropsRepeats(t *testing.T) {
	rec, h := newRecorder(t)

	require.True(t, rec.OnDecode("A"))
	require.False(t, rec.OnDecode("A"))
	require.False(t, rec.OnDecode(""))
	require.True(t, rec.OnDecode("B"))
	require.True(t, rec.OnDecode("A"))

	got := h.LoadAll()
	require.Len(t, got, 3)
	require.Equal(t, "A", got[0].Content)
	require.Equal(t, store.KindScan, got[0].Kind)
}

func TestReset(t *testing.T) {
	rec, h := newRecorder(t)

	rec.OnDecode("A")
	rec.Reset()
	require.True(t, rec.OnDecode("A"))
	require.Len(t, h.LoadAll(), 2)
}

func TestOnImageDecode_AlwaysRecords(t *testing.T) {
	rec, h := newRecorder(t)

	require.True(t, rec.OnImageDecode("same"))
	require.True(t, rec.OnImageDecode("same"))
	require.False(t, rec.OnImageDecode(""))
	require.Len(t, h.LoadAll(), 2)
}

func TestOnEncode(t *testing.T) {
	rec, h := newRecorder(t)

	rec.OnEncode("https://example.com")
	rec.OnDecode("hello-scan")

	got := h.LoadAll()
	require.Equal(t, "hello-scan", got[0].Content)
	require.Equal(t, store.KindScan, got[0].Kind)
	require.Equal(t, "https://example.com", got[1].Content)
	require.Equal(t, store.KindGenerate, got[1].Kind)
}

func TestFollow(t *testing.T) {
	rec, h := newRecorder(t)

	src := strings.NewReader("first\r\nfirst\nfirst\n\nsecond\nfirst\n")
	n, err := Follow(context.Background(), src, rec)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	got := h.LoadAll()
	require.Equal(t, "first", got[0].Content)
	require.Equal(t, "second", got[1].Content)
	require.Equal(t, "first", got[2].Content)
}

func TestFollow_Cancelled(t *testing.T) {
	rec, h := newRecorder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Follow(ctx, strings.NewReader("a\nb\n"), rec)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
	require.Empty(t, h.LoadAll())
}

func TestFollowImages_KeepsRepeats(t *testing.T) {
	rec, h := newRecorder(t)

	n, err := FollowImages(context.Background(), strings.NewReader("x\nx\n\n"), rec)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, h.LoadAll(), 2)
}
