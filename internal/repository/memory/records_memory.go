// Package memory keeps records in process memory. It backs the service when
// no database is configured and mirrors the matching rules of the postgres
// implementation.
package memory

import (
	"bytes"
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"qlcc/internal/repository"
)

type key struct {
	kind string
	id   int64
}

// RecordMemory is safe for concurrent use.
type RecordMemory struct {
	mu       sync.RWMutex
	records  map[key]repository.Record
	counters map[string]int64
	now      func() time.Time
}

func NewRecordMemory() *RecordMemory {
	return &RecordMemory{
		records:  make(map[key]repository.Record),
		counters: make(map[string]int64),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.RecordRepository = (*RecordMemory)(nil)

func (m *RecordMemory) sorted(kind string) []repository.Record {
	out := make([]repository.Record, 0)
	for k, rec := range m.records {
		if k.kind == kind {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b repository.Record) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (m *RecordMemory) All(_ context.Context, kind string) ([]repository.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(kind), nil
}

func (m *RecordMemory) List(_ context.Context, q repository.RecordQuery) (*repository.PageResult[repository.Record], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]repository.Record, 0)
	for _, rec := range m.sorted(q.Kind) {
		ok, err := matches(rec.Payload, q)
		if err != nil {
			return nil, fmt.Errorf("record %s %d: %w", rec.Kind, rec.ID, err)
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	total := len(matched)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return &repository.PageResult[repository.Record]{Items: matched[start:end], Total: total}, nil
}

// matches applies q the way payload->>field does: a missing or null field
// never matches, numbers and booleans compare by their JSON text.
func matches(payload json.RawMessage, q repository.RecordQuery) (bool, error) {
	if len(q.Contains) == 0 && len(q.Equals) == 0 {
		return true, nil
	}
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return false, err
	}
	for field, want := range q.Contains {
		got, ok := text(fields[field])
		if !ok || !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return false, nil
		}
	}
	for field, want := range q.Equals {
		got, ok := text(fields[field])
		if !ok || got != want {
			return false, nil
		}
	}
	return true, nil
}

func text(v any) (string, bool) {
	switch tv := v.(type) {
	case nil:
		return "", false
	case string:
		return tv, true
	case json.Number:
		return tv.String(), true
	case bool:
		return strconv.FormatBool(tv), true
	default:
		b, err := json.Marshal(tv)
		return string(b), err == nil
	}
}

func (m *RecordMemory) FindByID(_ context.Context, kind string, id int64) (*repository.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[key{kind, id}]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &rec, nil
}

func (m *RecordMemory) HighWater(_ context.Context, kind string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[kind], nil
}

func (m *RecordMemory) Reserve(_ context.Context, kind string, n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve %d ids: count must be positive", n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	first := m.counters[kind] + 1
	m.counters[kind] += int64(n)
	return first, nil
}

func (m *RecordMemory) Insert(_ context.Context, recs []repository.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		if _, dup := m.records[key{rec.Kind, rec.ID}]; dup {
			return fmt.Errorf("insert %s %d: duplicate key", rec.Kind, rec.ID)
		}
	}
	now := m.now()
	for _, rec := range recs {
		rec.UpdatedAt = now
		rec.Payload = slices.Clone(rec.Payload)
		m.records[key{rec.Kind, rec.ID}] = rec
		m.counters[rec.Kind] = max(m.counters[rec.Kind], rec.ID)
	}
	return nil
}

func (m *RecordMemory) Update(_ context.Context, rec repository.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{rec.Kind, rec.ID}
	if _, ok := m.records[k]; !ok {
		return sql.ErrNoRows
	}
	rec.UpdatedAt = m.now()
	rec.Payload = slices.Clone(rec.Payload)
	m.records[k] = rec
	return nil
}

func (m *RecordMemory) Delete(_ context.Context, kind string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{kind, id}
	if _, ok := m.records[k]; !ok {
		return sql.ErrNoRows
	}
	delete(m.records, k)
	return nil
}
