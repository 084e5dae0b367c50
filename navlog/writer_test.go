package navlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterPicksFirstAvailableName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log_001.reactivenavlog"), []byte("{}\n"), 0o644))

	w, err := NewWriter(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Write(NewRecord(1, 0.0)))
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(dir, "log_002.reactivenavlog"))
	require.NoError(t, err)
}

func TestWriterWritesNDJSON(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	rec1 := NewRecord(1, 0.0)
	rec2 := NewRecord(2, 0.1)
	require.NoError(t, w.Write(rec1))
	require.NoError(t, w.Write(rec2))
	require.NoError(t, w.Close())

	f, err := os.Open(filepath.Join(dir, "log_001.reactivenavlog"))
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	count := 0
	for scanner.Scan() {
		var r Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		count++
	}
	require.Equal(t, 2, count)
}

func TestWriterNilSafe(t *testing.T) {
	var w *Writer
	require.NoError(t, w.Write(NewRecord(1, 0)))
	require.NoError(t, w.Close())
}
