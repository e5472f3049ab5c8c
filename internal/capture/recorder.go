package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"qrlog/internal/store"
)

// Recorder is where decoders and generators report their results.
type Recorder struct {
	history *store.History
	logger  *slog.Logger

	mu   sync.Mutex
	last string
}

func NewRecorder(h *store.History, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{history: h, logger: logger}
}

// OnDecode handles a payload decoded from a live feed. A feed sees the same
// code frame after frame, so a payload equal to the previous live result is
// dropped. It reports whether the payload was recorded.
func (r *Recorder) OnDecode(payload string) bool {
	if payload == "" {
		return false
	}
	r.mu.Lock()
	if payload == r.last {
		r.mu.Unlock()
		return false
	}
	r.last = payload
	r.mu.Unlock()

	r.history.Append(payload, store.KindScan)
	r.logger.Debug("scan recorded", "source", "feed", "len", len(payload))
	return true
}

// OnImageDecode handles a payload decoded from a still image. Every
// non-empty result is recorded.
func (r *Recorder) OnImageDecode(payload string) bool {
	if payload == "" {
		return false
	}
	r.history.Append(payload, store.KindScan)
	r.logger.Debug("scan recorded", "source", "image", "len", len(payload))
	return true
}

// OnEncode handles a payload produced by the generator.
func (r *Recorder) OnEncode(payload string) {
	r.history.Append(payload, store.KindGenerate)
	r.logger.Debug("generate recorded", "len", len(payload))
}

// Reset forgets the previous live result, as when a feed is restarted.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.last = ""
	r.mu.Unlock()
}

// Follow feeds each line of a decoder's output to OnDecode until src is
// exhausted or ctx is done. It returns how many payloads were recorded.
func Follow(ctx context.Context, src io.Reader, rec *Recorder) (int, error) {
	return follow(ctx, src, rec.OnDecode)
}

// FollowImages is Follow for a decoder run over still images.
func FollowImages(ctx context.Context, src io.Reader, rec *Recorder) (int, error) {
	return follow(ctx, src, rec.OnImageDecode)
}

func follow(ctx context.Context, src io.Reader, record func(string) bool) (int, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	recorded := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return recorded, err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if record(line) {
			recorded++
		}
	}
	if err := scanner.Err(); err != nil {
		return recorded, fmt.Errorf("read decoder output: %w", err)
	}
	return recorded, nil
}
