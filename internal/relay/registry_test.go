package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	msgs [][]byte
}

func (f *fakeConn) Send(data []byte) {
	f.msgs = append(f.msgs, data)
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{}

	_, ok := r.Lookup("alice")
	assert.False(t, ok)

	r.Register("alice", conn)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, conn, got.(*fakeConn))
}

func TestRegistryLatestRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	third := &fakeConn{}

	r.Register("alice", first)
	r.Register("alice", second)
	r.Register("alice", third)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, third, got.(*fakeConn))
	assert.Equal(t, 1, r.Count())
}

func TestRegistryRemoveByConn(t *testing.T) {
	r := NewRegistry()
	aliceConn := &fakeConn{}
	bobConn := &fakeConn{}
	r.Register("alice", aliceConn)
	r.Register("bob", bobConn)

	id, ok := r.RemoveByConn(aliceConn)
	require.True(t, ok)
	assert.Equal(t, "alice", id)

	_, ok = r.Lookup("alice")
	assert.False(t, ok)

	// bob is untouched
	got, ok := r.Lookup("bob")
	require.True(t, ok)
	assert.Same(t, bobConn, got.(*fakeConn))
}

func TestRegistryRemoveByConnUnknown(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", &fakeConn{})

	id, ok := r.RemoveByConn(&fakeConn{})
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Equal(t, 1, r.Count())
}

func TestRegistrySupersededConnStaysOut(t *testing.T) {
	// After a duplicate registration the first connection is no longer
	// in the registry, so its disconnect must not free the identifier.
	r := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	r.Register("alice", first)
	r.Register("alice", second)

	_, ok := r.RemoveByConn(first)
	assert.False(t, ok)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, second, got.(*fakeConn))
}
