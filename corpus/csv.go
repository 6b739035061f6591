package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/knowdex"
)

// FromCSV reads a CSV corpus. The first row is the header and names the
// record fields; every following row becomes one record with string values,
// in header order.
func FromCSV(r io.Reader) ([]knowdex.Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv corpus has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var records []knowdex.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}

		rec := make(knowdex.Record, len(header))
		for i, name := range header {
			rec[i] = knowdex.Field{Name: name, Value: row[i]}
		}
		records = append(records, rec)
	}

	return records, nil
}

// FromCSVFile reads a CSV corpus from the given path.
func FromCSVFile(path string) ([]knowdex.Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open csv corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := FromCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}
