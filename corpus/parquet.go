package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/knowdex"
)

// FromParquetFile reads a Parquet corpus. Every top-level column becomes a
// record field, in schema order; null values are dropped and repeated (list)
// values collapse into a slice.
//
// Читает через row API, не Schema.Reconstruct: тот не переживает
// nullable колонки с complex types.
func FromParquetFile(path string) ([]knowdex.Record, error) {
	h, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	names, slots := resolveColumns(h.pf)

	var records []knowdex.Record
	for _, rg := range h.pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, 256)

		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				records = append(records, rowToRecord(buf[i], names, slots))
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read parquet rows: %w", readErr)
			}
		}
	}

	return records, nil
}

// resolveColumns maps leaf column indices to top-level field slots,
// preserving schema order.
func resolveColumns(pf *parquet.File) ([]string, map[int]int) {
	var names []string
	slotByName := make(map[string]int)
	slots := make(map[int]int)

	for leaf, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		name := path[0]
		slot, ok := slotByName[name]
		if !ok {
			slot = len(names)
			slotByName[name] = slot
			names = append(names, name)
		}
		slots[leaf] = slot
	}
	return names, slots
}

func rowToRecord(row parquet.Row, names []string, slots map[int]int) knowdex.Record {
	values := make([][]any, len(names))
	for _, v := range row {
		slot, ok := slots[v.Column()]
		if !ok || v.IsNull() {
			continue
		}
		values[slot] = append(values[slot], parquetValue(v))
	}

	rec := make(knowdex.Record, 0, len(names))
	for slot, name := range names {
		switch len(values[slot]) {
		case 0:
			// column was null for this row
		case 1:
			rec = append(rec, knowdex.Field{Name: name, Value: values[slot][0]})
		default:
			rec = append(rec, knowdex.Field{Name: name, Value: values[slot]})
		}
	}
	return rec
}

func parquetValue(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return v.String()
	}
}

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open parquet corpus: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat parquet corpus: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
