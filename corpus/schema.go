package corpus

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kailas-cloud/knowdex"
)

const tagKey = "knowdex"

// fieldMeta maps one struct field to a record field name.
type fieldMeta struct {
	structIdx int
	name      string
}

// FromStructs turns a slice of flat structs into corpus records. Exported
// fields become record fields in declaration order, named by the `knowdex`
// struct tag when present, by the Go field name otherwise. A `knowdex:"-"`
// tag excludes the field. Nil pointer fields are dropped; non-nil pointers
// are dereferenced.
func FromStructs[T any](items []T) ([]knowdex.Record, error) {
	meta, err := parseStructFields[T]()
	if err != nil {
		return nil, err
	}

	records := make([]knowdex.Record, len(items))
	for i := range items {
		records[i] = structToRecord(reflect.ValueOf(&items[i]).Elem(), meta)
	}
	return records, nil
}

// parseStructFields reflects on T once and extracts the field mapping.
func parseStructFields[T any]() ([]fieldMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("corpus: type %v is not a struct", t)
	}

	var meta []fieldMeta
	for i := range t.NumField() {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}

		name := f.Name
		if tag := f.Tag.Get(tagKey); tag != "" {
			if tag == "-" {
				continue
			}
			name, _, _ = strings.Cut(tag, ",")
		}
		meta = append(meta, fieldMeta{structIdx: i, name: name})
	}

	if len(meta) == 0 {
		return nil, fmt.Errorf("corpus: struct %s has no usable fields", t)
	}
	return meta, nil
}

func structToRecord(v reflect.Value, meta []fieldMeta) knowdex.Record {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	rec := make(knowdex.Record, 0, len(meta))
	for _, m := range meta {
		fv := v.Field(m.structIdx)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		rec = append(rec, knowdex.Field{Name: m.name, Value: fv.Interface()})
	}
	return rec
}
