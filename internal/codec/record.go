// Package codec converts browser tables to and from the header-keyed JSON
// record arrays used by the import/export files.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Record is one flat JSON object keyed by display header. Keys keep their
// order so an exported file lists columns the way the table shows them.
type Record struct {
	Keys   []string
	Values map[string]any
}

func NewRecord() Record {
	return Record{Values: map[string]any{}}
}

// Set appends key (or replaces its value when already present).
func (r *Record) Set(key string, v any) {
	if r.Values == nil {
		r.Values = map[string]any{}
	}
	if _, ok := r.Values[key]; !ok {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = v
}

func (r Record) Get(key string) (any, bool) {
	v, ok := r.Values[key]
	return v, ok
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Values[k])
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}
	out := NewRecord()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("record: bad key %v", kt)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

// EncodeJSON writes records as an indented JSON array.
func EncodeJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(records)
}

// DecodeRecords reads a JSON array of flat objects.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var out []Record
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}
