package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is an immutable summary of one completed call. StartTime is
// the moment the record was appended and EndTime is StartTime plus the
// duration, a derived field rather than an observed wall-clock end.
type Record struct {
	ID        string    `json:"id"`
	Caller    string    `json:"caller"`
	Callee    string    `json:"callee"`
	StartTime time.Time `json:"startTime"`
	Duration  int       `json:"duration"`
	EndTime   time.Time `json:"endTime"`
}

// CallLog persists completed-call records as a single JSON document,
// rewritten in full on every append. The read-modify-write cycle runs
// under one mutex so concurrent appends cannot lose each other's
// entries. Append failures are for the caller to log, never to treat
// as fatal.
type CallLog struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewCallLog(path string) *CallLog {
	return &CallLog{path: path, now: time.Now}
}

// Append builds a record for the completed call and rewrites the log
// with it included.
func (l *CallLog) Append(caller, callee string, durationSeconds int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.loadLocked()

	now := l.now().UTC()
	records = append(records, Record{
		ID:        newRecordID(now),
		Caller:    caller,
		Callee:    callee,
		StartTime: now,
		Duration:  durationSeconds,
		EndTime:   now.Add(time.Duration(durationSeconds) * time.Second),
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode call records: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write call records: %w", err)
	}
	return nil
}

// LoadAll returns every persisted record in append order. A missing or
// unparseable log reads as empty.
func (l *CallLog) LoadAll() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

func (l *CallLog) loadLocked() []Record {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// newRecordID builds a best-effort unique id from the append timestamp
// and a random suffix.
func newRecordID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
