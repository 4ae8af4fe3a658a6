package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *CallLog {
	t.Helper()
	return NewCallLog(filepath.Join(t.TempDir(), "call-records.json"))
}

func TestCallLogAppendAndReload(t *testing.T) {
	l := newTestLog(t)

	require.NoError(t, l.Append("alice", "bob", 5))
	require.NoError(t, l.Append("carol", "dave", 0))
	require.NoError(t, l.Append("alice", "carol", 120))

	records := l.LoadAll()
	require.Len(t, records, 3)

	assert.Equal(t, "alice", records[0].Caller)
	assert.Equal(t, "bob", records[0].Callee)
	assert.Equal(t, 5, records[0].Duration)

	assert.Equal(t, "carol", records[1].Caller)
	assert.Equal(t, 0, records[1].Duration)

	assert.Equal(t, "alice", records[2].Caller)
	assert.Equal(t, 120, records[2].Duration)
}

func TestCallLogEndTimeIsDerived(t *testing.T) {
	l := newTestLog(t)
	appendedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return appendedAt }

	require.NoError(t, l.Append("alice", "bob", 42))

	records := l.LoadAll()
	require.Len(t, records, 1)
	assert.True(t, records[0].StartTime.Equal(appendedAt))
	assert.True(t, records[0].EndTime.Equal(appendedAt.Add(42*time.Second)))
}

func TestCallLogRecordIDsAreUnique(t *testing.T) {
	l := newTestLog(t)
	fixed := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	require.NoError(t, l.Append("alice", "bob", 1))
	require.NoError(t, l.Append("alice", "bob", 1))

	records := l.LoadAll()
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}

func TestCallLogMissingFileLoadsEmpty(t *testing.T) {
	l := newTestLog(t)
	assert.Empty(t, l.LoadAll())
}

func TestCallLogMalformedFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call-records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	l := NewCallLog(path)
	assert.Empty(t, l.LoadAll())

	// appending over a malformed log starts it over rather than failing
	require.NoError(t, l.Append("alice", "bob", 3))
	assert.Len(t, l.LoadAll(), 1)
}

func TestCallLogAppendReportsWriteFailure(t *testing.T) {
	// a directory at the log path makes the write fail
	l := NewCallLog(t.TempDir())
	assert.Error(t, l.Append("alice", "bob", 1))
}
