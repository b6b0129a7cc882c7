package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes JSON numbers as well as numeric strings. Dashboard clients
// historically sent apartment numbers both ways; anything else is rejected
// at bind time.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("value %q is not an integer", raw)
	}
	*f = FlexInt(n)
	return nil
}

// Int returns the plain integer value.
func (f FlexInt) Int() int {
	return int(f)
}
