package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestOpen_CreatesEmptyJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	j, err := Open[entry](path)
	require.NoError(t, err)
	defer func() { require.NoError(t, j.Close()) }()

	assert.Equal(t, path, j.Path())
	assert.Equal(t, uint64(0), j.Len())
}

func TestAppendAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	j, err := Open[entry](path)
	require.NoError(t, err)
	defer func() { require.NoError(t, j.Close()) }()

	require.NoError(t, j.Append(entry{Name: "a", Count: 1}))
	require.NoError(t, j.Append(entry{Name: "b", Count: 2}))
	assert.Equal(t, uint64(2), j.Len())

	got, err := j.Get(1)
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "b", Count: 2}, got)

	_, err = j.Get(5)
	assert.Error(t, err)
}

func TestRange_VisitsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	j, err := Open[entry](path)
	require.NoError(t, err)
	defer func() { require.NoError(t, j.Close()) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, j.Append(entry{Name: "x", Count: i}))
	}

	var seen []int
	err = j.Range(func(index uint64, record entry) error {
		assert.Equal(t, int(index), record.Count)
		seen = append(seen, record.Count)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestOpen_CountsExistingRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	j, err := Open[entry](path)
	require.NoError(t, err)
	require.NoError(t, j.Append(entry{Name: "kept", Count: 7}))
	require.NoError(t, j.Close())

	reopened, err := Open[entry](path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	assert.Equal(t, uint64(1), reopened.Len())

	require.NoError(t, reopened.Append(entry{Name: "new", Count: 8}))
	assert.Equal(t, uint64(2), reopened.Len())

	got, err := reopened.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
}

func TestRange_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"name\":\"a\",\"count\":1}\n\n{\"name\":\"b\",\"count\":2}\n"), 0o640))

	j, err := Open[entry](path)
	require.NoError(t, err)
	defer func() { require.NoError(t, j.Close()) }()

	assert.Equal(t, uint64(2), j.Len())

	var names []string
	require.NoError(t, j.Range(func(_ uint64, record entry) error {
		names = append(names, record.Name)
		return nil
	}))
	assert.Equal(t, []string{"a", "b"}, names)
}
