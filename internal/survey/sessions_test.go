package survey

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateGetDelete(t *testing.T) {
	m := NewManager()
	assert.Equal(t, 0, m.Len())

	session := m.Create()
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)

	m.Delete(session.ID)
	assert.Equal(t, 0, m.Len())
	_, ok = m.Get(session.ID)
	assert.False(t, ok)
}

func TestManager_GetUnknownID(t *testing.T) {
	m := NewManager()
	_, ok := m.Get(uuid.New())
	assert.False(t, ok)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager()
	a := m.Create()
	b := m.Create()
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Begin())
	assert.Equal(t, StepSDGSelect, a.Step())
	assert.Equal(t, StepStart, b.Step())
}
