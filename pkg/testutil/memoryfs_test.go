package testutil

import (
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSWriteReadRename(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/in", 0755))
	require.NoError(t, m.MkdirAll("/out", 0755))
	require.NoError(t, m.WriteFile("/in/a.txt", []byte("hello"), 0644))

	data, err := m.ReadFile("/in/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, m.Rename("/in/a.txt", "/out/a.txt"))
	_, err = m.Stat("/in/a.txt")
	assert.True(t, os.IsNotExist(err))

	data, err = m.ReadFile("/out/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestMemoryFSWriteRequiresParent(t *testing.T) {
	m := NewMemoryFS()
	err := m.WriteFile("/missing/a.txt", []byte("x"), 0644)
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryFSReadDir(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/dir/sub", 0755))
	require.NoError(t, m.WriteFile("/dir/b.txt", nil, 0644))
	require.NoError(t, m.WriteFile("/dir/a.txt", nil, 0644))

	entries, err := m.ReadDir("/dir")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())
	assert.Equal(t, "sub", entries[2].Name())
	assert.True(t, entries[2].IsDir())
}

func TestMemoryFSErrorInjection(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/in", 0755))
	require.NoError(t, m.WriteFile("/in/a.txt", []byte("x"), 0644))

	injected := &fs.PathError{Op: "rename", Path: "/in/a.txt", Err: fs.ErrPermission}
	m.Fail("rename", "/in/a.txt", injected)

	err := m.Rename("/in/a.txt", "/in/b.txt")
	assert.ErrorIs(t, err, fs.ErrPermission)

	// Other operations on the same path are unaffected.
	_, err = m.ReadFile("/in/a.txt")
	assert.NoError(t, err)
}
