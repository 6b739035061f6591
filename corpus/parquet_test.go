package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type faqRow struct {
	Question string  `parquet:"question"`
	Answer   string  `parquet:"answer"`
	Views    int64   `parquet:"views"`
	Score    float64 `parquet:"score"`
	Archived bool    `parquet:"archived"`
	Note     *string `parquet:"note,optional"`
}

func writeParquet(t *testing.T, rows []faqRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.parquet")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := parquet.NewGenericWriter[faqRow](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("write parquet rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close parquet writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromParquetFile(t *testing.T) {
	note := "escalated"
	path := writeParquet(t, []faqRow{
		{Question: "How do I pay?", Answer: "By card.", Views: 42, Score: 4.5, Archived: false, Note: &note},
		{Question: "Where is my order?", Answer: "In transit.", Views: 7, Score: 3.25, Archived: true},
	})

	records, err := FromParquetFile(path)
	if err != nil {
		t.Fatalf("FromParquetFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if v, _ := first.Get("question"); v != "How do I pay?" {
		t.Errorf("unexpected question: %v", v)
	}
	if v, _ := first.Get("views"); v != int64(42) {
		t.Errorf("expected int64 views 42, got %v (%T)", v, v)
	}
	if v, _ := first.Get("score"); v != 4.5 {
		t.Errorf("expected score 4.5, got %v (%T)", v, v)
	}
	if v, _ := first.Get("archived"); v != false {
		t.Errorf("expected archived false, got %v", v)
	}
	if v, _ := first.Get("note"); v != "escalated" {
		t.Errorf("expected note to survive, got %v", v)
	}

	second := records[1]
	if v, _ := second.Get("archived"); v != true {
		t.Errorf("expected archived true, got %v", v)
	}
	// Null column is dropped from the record entirely.
	if _, ok := second.Get("note"); ok {
		t.Errorf("expected null note to be absent, got record %v", second)
	}
}

func TestFromParquetFile_Missing(t *testing.T) {
	if _, err := FromParquetFile(filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("expected error for missing file")
	}
}
