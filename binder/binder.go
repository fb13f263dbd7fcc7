// Package binder decodes HTTP request data into Go structs: JSON bodies
// and query strings. Decoding failures surface as binder errors that the
// response layer renders as 400s, keeping malformed-input handling separate
// from rule validation.
package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// BindJSON decodes the request body into dst, rejecting unknown fields and
// trailing garbage. An empty body is an error: endpoints with optional bodies
// should not call BindJSON.
func BindJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		default:
			return errors.Join(ErrInvalidJSON, err)
		}
	}
	if dec.More() {
		return ErrInvalidJSON
	}
	return nil
}

// BindJSONMap decodes the request body into a generic map for schema and
// rule-set validation. A missing body yields an empty map so validators can
// report required-field errors instead of a decode failure.
func BindJSONMap(r *http.Request) (map[string]any, error) {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	return payload, nil
}

// BindQuery populates dst from the request query string using `query` struct
// tags. Supported field types: string, bool, int variants, float variants,
// and slices thereof (repeated parameters).
func BindQuery(r *http.Request, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	values := r.URL.Query()
	elem := v.Elem()
	t := elem.Type()

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Tag.Get("query")
		if name == "" || name == "-" {
			continue
		}
		name, _, _ = strings.Cut(name, ",")

		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}

		if err := setField(elem.Field(i), raw); err != nil {
			return fmt.Errorf("%w: parameter %q: %v", ErrInvalidQueryParam, name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, raw []string) error {
	if field.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(field.Type(), len(raw), len(raw))
		for i, s := range raw {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}
	return setScalar(field, raw[0])
}

func setScalar(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
