package handlers

import (
	"bytes"
	"strconv"
)

// OptionalID is a tri-state id field for partial updates: absent (leave as
// is), explicitly null or empty (clear), or an id (set). JSON numbers and
// numeric strings are both accepted.
type OptionalID struct {
	Set   bool
	Valid bool
	Value int64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true

	s := string(bytes.TrimSpace(b))
	if s == "null" || s == `""` {
		return nil
	}

	s = trimQuotes(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}

	o.Valid = true
	o.Value = v
	return nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
