// Package fixture writes and validates the fake people CSV fixture.
package fixture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/zarlcorp/fakepeople/internal/person"
)

const (
	// DefaultPath is where the fixture is written.
	DefaultPath = "./fake_people.csv"

	// RecordCount is the number of data rows in a fixture.
	RecordCount = 1000
)

// ErrIsDir is returned when the fixture path names a directory.
var ErrIsDir = errors.New("is a directory")

// Source produces records one at a time.
type Source interface {
	Generate() person.Record
}

// Write streams the header followed by n generated records to w. Each
// record is generated only when it is written.
func Write(w io.Writer, src Source, n int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(person.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < n; i++ {
		if err := cw.Write(src.Generate().Fields()); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Generate replaces the file at path with a fixture of n records from src.
// A missing file is not an error; any other failure to remove the old file
// aborts before anything is created. A failed write may leave a partial file.
func Generate(path string, src Source, n int) (err error) {
	if err := remove(path); err != nil {
		return fmt.Errorf("generate fixture: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("generate fixture: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("generate fixture: close %s: %w", path, cerr)
		}
	}()

	if err := Write(f, src, n); err != nil {
		return fmt.Errorf("generate fixture: %s: %w", path, err)
	}
	return nil
}

// remove unlinks a previous fixture. Directories are never removed, even
// empty ones.
func remove(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("remove %s: %w", path, ErrIsDir)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
