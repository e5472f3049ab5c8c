package store

import (
	"encoding/json"
	"time"
)

// Kind tags where an entry's content came from.
type Kind string

const (
	KindScan     Kind = "scan"
	KindGenerate Kind = "generate"
)

// DefaultKey is the slot the history log is persisted under.
const DefaultKey = "qrHistory"

// MaxEntries is the hard cap on the history log length.
const MaxEntries = 20

// timestampLayout matches a JavaScript Date.toISOString() value.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Entry is one recorded scan or generate event.
type Entry struct {
	Content    string
	Kind       Kind
	RecordedAt time.Time
}

type record struct {
	Content   string `json:"content"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		Content:   e.Content,
		Type:      string(e.Kind),
		Timestamp: e.RecordedAt.UTC().Format(timestampLayout),
	})
}

// UnmarshalJSON accepts any record with a content string. A timestamp that
// does not parse leaves RecordedAt at the zero time.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	e.Content = r.Content
	e.Kind = Kind(r.Type)
	e.RecordedAt = time.Time{}
	if ts, err := time.Parse(time.RFC3339Nano, r.Timestamp); err == nil {
		e.RecordedAt = ts
	}
	return nil
}

func encodeLog(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

func decodeLog(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}
