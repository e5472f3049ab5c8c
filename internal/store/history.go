package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrIndexOutOfRange is returned when an index does not name an entry.
var ErrIndexOutOfRange = errors.New("history index out of range")

// History is the bounded, newest-first log of recent scans and generations.
//
// Every mutation rewrites the whole log into the slot. Storage faults never
// reach the caller: a failed read or write is logged and the History switches
// to an in-memory log for the rest of its lifetime. Two processes sharing a
// slot are last-writer-wins.
type History struct {
	mu        sync.Mutex
	slot      Slot
	key       string
	now       func() time.Time
	logger    *slog.Logger
	degraded  bool
	mem       []Entry
	listeners map[int]func([]Entry)
	nextID    int
}

// Option configures a History.
type Option func(*History)

func WithKey(key string) Option {
	return func(h *History) { h.key = key }
}

func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *History) { h.logger = logger }
}

// Open wraps slot in a History. A nil slot starts the History degraded.
func Open(slot Slot, opts ...Option) (*History, error) {
	h := &History{
		slot:      slot,
		key:       DefaultKey,
		now:       time.Now,
		logger:    slog.Default(),
		listeners: make(map[int]func([]Entry)),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.key == "" {
		return nil, fmt.Errorf("history key cannot be empty")
	}
	if slot == nil {
		h.degraded = true
	}
	return h, nil
}

// Close releases the underlying slot.
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.slot == nil {
		return nil
	}
	err := h.slot.Close()
	h.slot = nil
	h.degraded = true
	return err
}

// Degraded reports whether the History has fallen back to memory only.
func (h *History) Degraded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.degraded
}

// Subscribe registers fn to receive a snapshot after every mutation.
// The returned func removes the subscription.
func (h *History) Subscribe(fn func([]Entry)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// Append records content at the head of the log, dropping whatever falls
// beyond MaxEntries.
func (h *History) Append(content string, kind Kind) Entry {
	h.mu.Lock()
	e := Entry{Content: content, Kind: kind, RecordedAt: h.now()}
	entries := h.load()
	entries = append([]Entry{e}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	h.persist(entries)
	snap, fns := h.snapshot()
	h.mu.Unlock()

	notify(fns, snap)
	return e
}

// LoadAll returns the log newest-first. It never fails: missing or
// unreadable state reads as an empty log.
func (h *History) LoadAll() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.load())
}

// Get returns the entry at index.
func (h *History) Get(index int) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := h.load()
	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(entries))
	}
	return entries[index], nil
}

// DeleteAt removes the entry at index. An out-of-range index leaves the log
// untouched and returns ErrIndexOutOfRange.
func (h *History) DeleteAt(index int) error {
	h.mu.Lock()
	entries := h.load()
	if index < 0 || index >= len(entries) {
		h.mu.Unlock()
		h.logger.Debug("history delete ignored", "index", index, "len", len(entries))
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(entries))
	}
	entries = append(clone(entries[:index]), entries[index+1:]...)
	h.persist(entries)
	snap, fns := h.snapshot()
	h.mu.Unlock()

	notify(fns, snap)
	return nil
}

// Clear empties the log and removes the persisted slot.
func (h *History) Clear() {
	h.mu.Lock()
	h.mem = nil
	if !h.degraded {
		if err := h.slot.Remove(h.key); err != nil {
			h.fallback("remove", err)
		}
	}
	snap, fns := h.snapshot()
	h.mu.Unlock()

	notify(fns, snap)
}

// load must be called with mu held.
func (h *History) load() []Entry {
	if h.degraded {
		return h.mem
	}
	data, ok, err := h.slot.Get(h.key)
	if err != nil {
		h.fallback("read", err)
		return h.mem
	}
	if !ok {
		h.mem = nil
		return nil
	}
	entries, err := decodeLog(data)
	if err != nil {
		h.logger.Warn("history data malformed, starting empty", "key", h.key, "err", err)
		h.mem = nil
		return nil
	}
	h.mem = entries
	return entries
}

// persist must be called with mu held.
func (h *History) persist(entries []Entry) {
	h.mem = entries
	if h.degraded {
		return
	}
	data, err := encodeLog(entries)
	if err != nil {
		h.fallback("encode", err)
		return
	}
	if err := h.slot.Set(h.key, data); err != nil {
		h.fallback("write", err)
	}
}

func (h *History) fallback(op string, err error) {
	h.degraded = true
	h.logger.Warn("history storage unavailable, keeping log in memory", "op", op, "key", h.key, "err", err)
}

func (h *History) snapshot() ([]Entry, []func([]Entry)) {
	fns := make([]func([]Entry), 0, len(h.listeners))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	return clone(h.mem), fns
}

func notify(fns []func([]Entry), entries []Entry) {
	for _, fn := range fns {
		fn(clone(entries))
	}
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
