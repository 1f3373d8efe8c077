// Package jsonnum decodes integer ids that clients send either as JSON numbers
// or as numeric strings.
package jsonnum

import (
	"fmt"
	"strconv"
	"strings"
)

// Int64 is an optional integer. null, "" and an absent field leave it unset.
type Int64 struct {
	Value int64
	Valid bool
}

func (n *Int64) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Int64{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("jsonnum: %s is not a string: %w", s, err)
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*n = Int64{}
			return nil
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("jsonnum: %s is not an integer", s)
	}
	*n = Int64{Value: v, Valid: true}
	return nil
}

// Ptr returns nil when unset.
func (n Int64) Ptr() *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
