package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DaySet is a set of weekday numbers (0=Sunday .. 6=Saturday) stored as a
// JSON array in a text column.
type DaySet []int

// Contains reports whether day is a member of the set.
func (d DaySet) Contains(day int) bool {
	for _, v := range d {
		if v == day {
			return true
		}
	}
	return false
}

// Valid reports whether every member is a weekday number 0-6.
func (d DaySet) Valid() bool {
	for _, v := range d {
		if v < 0 || v > 6 {
			return false
		}
	}
	return true
}

// Value implements driver.Valuer.
func (d DaySet) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal([]int(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *DaySet) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]int)(d))
	case string:
		return json.Unmarshal([]byte(v), (*[]int)(d))
	default:
		return fmt.Errorf("unsupported type %T for DaySet", value)
	}
}
