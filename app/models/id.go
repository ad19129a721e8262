package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a record id in a request body. It accepts a JSON number or a
// string holding an integer, so "statusId": "1" reads the same as 1.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = ID(n)
	return nil
}
