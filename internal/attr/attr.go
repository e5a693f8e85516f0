// Package attr normalizes raw DOT attribute values.
//
// Values arrive exactly as written in the source document, so quoted strings
// keep their quotes. Every lookup goes through Clean before a value is used.
package attr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Attrs maps attribute names to raw values.
type Attrs map[string]string

// Clean strips exactly one pair of enclosing double quotes.
// Values that are not wrapped are returned unchanged.
func Clean(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// Unwrap returns the element of a one-element list, or the value itself when it
// is already a string. Some upstream parsers hand labels back as lists.
func Unwrap(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []string:
		if len(val) == 1 {
			return val[0], true
		}
	case []any:
		if len(val) == 1 {
			s, ok := val[0].(string)
			return s, ok
		}
	}
	return "", false
}

// Lookup returns the cleaned value of key and whether it was explicitly set.
func (a Attrs) Lookup(key string) (string, bool) {
	raw, ok := a[key]
	if !ok {
		return "", false
	}
	return Clean(raw), true
}

// Get returns the cleaned value of key, or def when key is absent.
// An explicitly empty value counts as present.
func (a Attrs) Get(key, def string) string {
	if v, ok := a.Lookup(key); ok {
		return v
	}
	return def
}

// ErrNotFinite is returned for values that parse as NaN or an infinity.
var ErrNotFinite = errors.New("value is not a finite number")

// CoercionError reports a numeric attribute that could not be parsed.
// Callers recover from it by substituting a documented default.
type CoercionError struct {
	Name  string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("attribute %s: cannot coerce %q: %v", e.Name, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// ParseFloat parses a cleaned attribute value as a finite float.
func ParseFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &CoercionError{Name: name, Value: value, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &CoercionError{Name: name, Value: value, Err: ErrNotFinite}
	}
	return f, nil
}
