// Package logtest captures slog records so tests can assert on traces.
package logtest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Record is a flattened slog.Record. Attribute values are kept in their string form.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

type store struct {
	mu      sync.Mutex
	records []Record
}

// Recorder is a slog.Handler keeping every record it receives.
// Groups are ignored: attribute keys are stored as given.
type Recorder struct {
	store *store
	attrs []slog.Attr
}

// New returns a debug level logger writing into a fresh Recorder.
func New() (*slog.Logger, *Recorder) {
	r := &Recorder{store: &store{}}
	return slog.New(r), r
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]string, len(r.attrs)+record.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.String()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, Record{Level: record.Level, Message: record.Message, Attrs: attrs})
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Recorder{store: r.store, attrs: append(append([]slog.Attr(nil), r.attrs...), attrs...)}
}

func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]Record(nil), r.store.records...)
}

// Messages returns the records whose message equals msg.
func (r *Recorder) Messages(msg string) []Record {
	return lo.Filter(r.Records(), func(rec Record, _ int) bool {
		return rec.Message == msg
	})
}

// Where returns the records carrying key=value.
func (r *Recorder) Where(key, value string) []Record {
	return lo.Filter(r.Records(), func(rec Record, _ int) bool {
		v, ok := rec.Attrs[key]
		return ok && v == value
	})
}
