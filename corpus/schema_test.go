package corpus

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/knowdex"
)

type article struct {
	Title  string `knowdex:"title"`
	Body   string
	Views  int    `knowdex:"views"`
	Secret string `knowdex:"-"`
	Tag    *string
	hidden string
}

func TestFromStructs(t *testing.T) {
	tag := "howto"
	items := []article{
		{Title: "Resetting passwords", Body: "Use the account page.", Views: 10, Secret: "x", Tag: &tag, hidden: "y"},
	}

	records, err := FromStructs(items)
	if err != nil {
		t.Fatalf("FromStructs: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	expected := knowdex.Record{
		{Name: "title", Value: "Resetting passwords"},
		{Name: "Body", Value: "Use the account page."},
		{Name: "views", Value: 10},
		{Name: "Tag", Value: "howto"},
	}
	if !reflect.DeepEqual(records[0], expected) {
		t.Errorf("unexpected record:\ngot:  %v\nwant: %v", records[0], expected)
	}
}

func TestFromStructs_NilPointerDropped(t *testing.T) {
	records, err := FromStructs([]article{{Title: "t", Body: "b"}})
	if err != nil {
		t.Fatalf("FromStructs: %v", err)
	}

	if _, ok := records[0].Get("Tag"); ok {
		t.Errorf("expected nil pointer field to be dropped, got %v", records[0])
	}
}

func TestFromStructs_PointerItems(t *testing.T) {
	records, err := FromStructs([]*article{{Title: "t", Body: "b", Views: 3}})
	if err != nil {
		t.Fatalf("FromStructs: %v", err)
	}

	if v, _ := records[0].Get("views"); v != 3 {
		t.Errorf("expected views 3, got %v", v)
	}
}

func TestFromStructs_NonStruct(t *testing.T) {
	if _, err := FromStructs([]int{1, 2}); err == nil {
		t.Fatal("expected error for non-struct type")
	}
}

func TestFromStructs_Empty(t *testing.T) {
	records, err := FromStructs([]article{})
	if err != nil {
		t.Fatalf("FromStructs: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
