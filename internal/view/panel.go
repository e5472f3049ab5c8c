package view

import (
	"fmt"
	"io"
	"sync"

	"qrlog/internal/store"
)

// Panel is the history list as the UI sees it. It listens to the History
// and redraws itself on every change, but only while it is active.
type Panel struct {
	history  *store.History
	renderer *Renderer
	out      io.Writer

	mu          sync.Mutex
	active      bool
	unsubscribe func()
}

func NewPanel(h *store.History, r *Renderer, out io.Writer) *Panel {
	p := &Panel{history: h, renderer: r, out: out}
	p.unsubscribe = h.Subscribe(p.changed)
	return p
}

// SetActive marks the panel visible or hidden. Only a visible panel redraws
// on history changes.
func (p *Panel) SetActive(active bool) {
	p.mu.Lock()
	p.active = active
	p.mu.Unlock()
}

// Refresh draws the current log regardless of visibility.
func (p *Panel) Refresh() {
	p.draw(p.history.LoadAll())
}

func (p *Panel) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// List returns the current rows without drawing.
func (p *Panel) List() []Row {
	return p.renderer.Render(p.history.LoadAll())
}

// Remove deletes the row at index.
func (p *Panel) Remove(index int) error {
	return p.history.DeleteAt(index)
}

// ClearAll empties the history.
func (p *Panel) ClearAll() {
	p.history.Clear()
}

// Close detaches the panel from the history.
func (p *Panel) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

func (p *Panel) changed(entries []store.Entry) {
	if !p.Active() {
		return
	}
	p.draw(entries)
}

func (p *Panel) draw(entries []store.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	Write(p.out, p.renderer, p.renderer.Render(entries))
}

// Write prints rows as a table, or the locale's empty-state line.
func Write(w io.Writer, r *Renderer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, r.locale.Empty)
		return
	}
	fmt.Fprintf(w, "%-4s %-10s %-24s %s\n", "#", "TYPE", "TIME", "CONTENT")
	fmt.Fprintln(w, "──────────────────────────────────────────────────────────────────────")
	for _, row := range rows {
		fmt.Fprintf(w, "%-4d %-10s %-24s %s\n", row.Index, row.Label, row.Time, row.Preview)
	}
}
