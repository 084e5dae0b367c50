package navlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Writer appends Records as newline-delimited JSON to a file named
// log_<NNN>.reactivenavlog inside dir, where NNN is the smallest 3-digit
// integer >= 1 that does not already name a file in dir (§6).
type Writer struct {
	file *os.File
	enc  *json.Encoder
}

// NewWriter opens a fresh log file in dir, choosing the first available
// log_<NNN>.reactivenavlog name.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating log directory %q", dir)
	}
	for n := 1; n <= 999; n++ {
		name := filepath.Join(dir, fmt.Sprintf("log_%03d.reactivenavlog", n))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "opening log file %q", name)
		}
		return &Writer{file: f, enc: json.NewEncoder(f)}, nil
	}
	return nil, errors.New("no non-colliding log_<NNN>.reactivenavlog name available")
}

// Write appends one Record to the log file.
func (w *Writer) Write(r *Record) error {
	if w == nil {
		return nil
	}
	return errors.Wrap(w.enc.Encode(r), "writing log record")
}

// Close closes the underlying log file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}
