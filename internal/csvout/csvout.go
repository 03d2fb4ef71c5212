// Package csvout serializes contact records to the fixed eight-column CSV layout.
package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"jobhunt-contacts/internal/domain"
)

var Header = []string{
	"email",
	"companyName",
	"hrName",
	"position",
	"industry",
	"companyType",
	"location",
	"companyWebsite",
}

func Row(r domain.ContactRecord) []string {
	return []string{
		r.Email,
		r.CompanyName,
		r.HRName,
		r.Position,
		r.Industry,
		r.CompanyType,
		r.Location,
		r.CompanyWebsite,
	}
}

// Write emits the header and one row per record. Records end in "\n".
func Write(w io.Writer, records []domain.ContactRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile replaces path with the CSV for records. The directory must exist.
// The rows go to a temp file next to path which is renamed into place, while
// an advisory lock on path+".lock" keeps concurrent writers to the same file apart.
func WriteFile(path string, records []domain.ContactRecord) (err error) {
	dir := filepath.Dir(path)
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, records); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	return nil
}

// ReadFile parses a file produced by WriteFile back into records.
func ReadFile(path string) ([]domain.ContactRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range Header {
		if head[i] != h {
			return nil, fmt.Errorf("%s: column %d is %q, want %q", path, i+1, head[i], h)
		}
	}

	var out []domain.ContactRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		out = append(out, domain.ContactRecord{
			Email:          rec[0],
			CompanyName:    rec[1],
			HRName:         rec[2],
			Position:       rec[3],
			Industry:       rec[4],
			CompanyType:    rec[5],
			Location:       rec[6],
			CompanyWebsite: rec[7],
		})
	}
	return out, nil
}
