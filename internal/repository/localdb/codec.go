package localdb

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// encode turns a Row, a Match or a db-tagged struct into a Row.
func encode(v any) (Row, error) {
	switch x := v.(type) {
	case nil:
		return Row{}, nil
	case Row:
		return x.clone(), nil
	case Match:
		row := make(Row, len(x))
		for k, val := range x {
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("localdb: encode %s: %w", k, err)
			}
			row[k] = raw
		}
		return row, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Row{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("localdb: cannot encode %T", v)
	}
	row := Row{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		col := column(rt.Field(i))
		if col == "" {
			continue
		}
		raw, err := json.Marshal(rv.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("localdb: encode %s: %w", col, err)
		}
		row[col] = raw
	}
	return row, nil
}

// decode fills the db-tagged fields of the struct pointed to by v.
func decode(row Row, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("localdb: cannot decode into %T", v)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		col := column(rt.Field(i))
		if col == "" {
			continue
		}
		raw, ok := row[col]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, rv.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("localdb: decode %s: %w", col, err)
		}
	}
	return nil
}

func decodeAll[T any](rows []Row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := decode(row, &v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

func first[T any](rows []Row) (*T, bool, error) {
	if len(rows) == 0 {
		return nil, false, nil
	}
	var v T
	if err := decode(rows[0], &v); err != nil {
		return nil, false, err
	}
	return &v, true, nil
}

func column(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("db")
	if tag == "-" {
		return ""
	}
	return tag
}

// mustEncode is for matches built from plain values, which always marshal.
func mustEncode(m Match) Row {
	row, err := encode(m)
	if err != nil {
		panic(err)
	}
	return row
}
