package protein

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of a protein info record.
type Entry struct {
	Key   string
	Value any
}

// Info is an ordered record of display-able protein details. There is no
// fixed schema; keys render in the declaration order of the source
// document, so the type keeps its own ordering instead of relying on a
// map.
type Info struct {
	entries []Entry
}

// NewInfo builds an Info from the supplied entries, preserving order.
func NewInfo(entries ...Entry) Info {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return Info{entries: out}
}

// Entries returns a copy of the record in declaration order.
func (i Info) Entries() []Entry {
	out := make([]Entry, len(i.entries))
	copy(out, i.entries)
	return out
}

// Len reports the number of entries.
func (i Info) Len() int {
	return len(i.entries)
}

// IsZero reports whether the record holds no entries.
func (i Info) IsZero() bool {
	return len(i.entries) == 0
}

// Get returns the value stored under key.
func (i Info) Get(key string) (any, bool) {
	for _, entry := range i.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends a new entry when
// the key is absent.
func (i *Info) Set(key string, value any) {
	for idx, entry := range i.entries {
		if entry.Key == key {
			i.entries[idx].Value = value
			return
		}
	}
	i.entries = append(i.entries, Entry{Key: key, Value: value})
}

// UnmarshalJSON decodes a JSON object while preserving key order. Numbers
// decode as json.Number so values display verbatim.
func (i *Info) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("protein: decode info: %w", err)
	}
	if tok == nil {
		i.entries = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("protein: info must be a JSON object")
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("protein: decode info key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("protein: info key is not a string")
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("protein: decode info value %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("protein: decode info: %w", err)
	}

	i.entries = entries
	return nil
}

// MarshalJSON encodes the record as a JSON object in declaration order.
func (i Info) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, entry := range i.entries {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("protein: encode info value %q: %w", entry.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseInfo decodes a metadata payload into an ordered Info record.
func ParseInfo(data []byte) (Info, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}
