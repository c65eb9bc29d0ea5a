package stream_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/aretw0/urakawa/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the same scenario against any Stream implementation.
func exercise(t *testing.T, s stream.Stream) {
	t.Helper()

	n, err := s.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	length, err := s.Len()
	require.NoError(t, err)
	assert.EqualValues(t, 11, length)

	pos, err := s.Seek(6, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 6, pos)

	_, err = s.Write([]byte("there"))
	require.NoError(t, err)

	pos, err = s.Position()
	require.NoError(t, err)
	assert.EqualValues(t, 11, pos)

	_, err = s.Seek(0, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "hello there", string(data))

	pos, err = s.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 6, pos)

	require.NoError(t, s.Close())
}

func TestMemory(t *testing.T) {
	m := stream.NewMemory(nil)
	exercise(t, m)
	assert.Equal(t, "hello there", string(m.Bytes()))

	_, err := m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, stream.ErrClosed)
}

func TestMemory_GapIsZeroFilled(t *testing.T) {
	m := stream.NewMemory([]byte("ab"))
	_, err := m.Seek(4, io.SeekStart)
	require.NoError(t, err)
	_, err = m.Write([]byte("z"))
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 0, 0, 'z'}, m.Bytes())
}

func TestMemory_NegativeSeek(t *testing.T) {
	m := stream.NewMemory([]byte("abc"))
	_, err := m.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, stream.ErrNegativePosition)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xuk")
	f, err := stream.CreateFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Name())
	exercise(t, f)

	r, err := stream.OpenFile(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello there", string(data))
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := stream.OpenFile(filepath.Join(t.TempDir(), "missing.xuk"))
	assert.Error(t, err)
}
