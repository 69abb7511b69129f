// Package person generates fake people records for fixture data.
// All randomness comes from an injected source so runs can be reproduced.
package person

import (
	"fmt"
	"strconv"
)

// Header is the column order of a record in CSV form.
var Header = []string{"id", "email", "name", "is_parent"}

// Record is one generated fake person.
type Record struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsParent bool   `json:"is_parent"`
}

// Fields returns the record's values in Header order.
func (r Record) Fields() []string {
	return []string{r.ID, r.Email, r.Name, strconv.FormatBool(r.IsParent)}
}

// FromFields decodes a row in Header order.
func FromFields(fields []string) (Record, error) {
	if len(fields) != len(Header) {
		return Record{}, fmt.Errorf("decode record: want %d fields, got %d", len(Header), len(fields))
	}

	isParent, err := strconv.ParseBool(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("decode record: is_parent %q: %w", fields[3], err)
	}

	return Record{
		ID:       fields[0],
		Email:    fields[1],
		Name:     fields[2],
		IsParent: isParent,
	}, nil
}
