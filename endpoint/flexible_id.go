package endpoint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// flexibleID is an identifier a client may send either as a JSON string or
// as a JSON number. It always holds the textual form.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

func (f flexibleID) String() string {
	return string(f)
}
