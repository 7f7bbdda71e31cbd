package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The records API is loose about scalar and list types: ids arrive as
// numbers, flags as 0/1, and sub-lists may be JSON text stored in a column.
// The Flex types below accept every shape seen on the wire and never fail
// the surrounding decode.

// FlexString decodes a JSON string, number or bool into a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*f = ""
		return nil
	}
	*f = FlexString(data)
	return nil
}

// FlexInt decodes a JSON number or numeric string into an int.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var raw FlexString
	_ = raw.UnmarshalJSON(data)
	s := strings.TrimSpace(string(raw))
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(fl))
		return nil
	}
	*f = 0
	return nil
}

// FlexBool decodes true/false, 0/1 and their string forms.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var raw FlexString
	_ = raw.UnmarshalJSON(data)
	switch strings.ToLower(strings.TrimSpace(string(raw))) {
	case "", "0", "false", "null":
		*f = false
	default:
		*f = true
	}
	return nil
}

// JSONList decodes either a JSON array or a string holding a JSON array.
// Empty or invalid input yields an empty list.
type JSONList[T any] []T

// UnmarshalJSON implements json.Unmarshaler
func (l *JSONList[T]) UnmarshalJSON(data []byte) error {
	*l = JSONList[T]{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		data = []byte(s)
	}

	if data[0] != '[' {
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	if items != nil {
		*l = items
	}
	return nil
}

// Slice returns the list as a plain slice, never nil.
func (l JSONList[T]) Slice() []T {
	if l == nil {
		return []T{}
	}
	return []T(l)
}
