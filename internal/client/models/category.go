package models

import (
	"fmt"
	"regexp"
	"strings"
)

// CategoryType is the in-memory category kind. Its ordinal is not persisted;
// storage goes through the code table below.
type CategoryType int

const (
	CategoryExpense CategoryType = iota
	CategoryIncome
	CategoryTransfer
)

// CategoryTypeUnknown stands for a type name this client cannot map, for
// example one sent by a newer server. It has no code, so it never validates.
const CategoryTypeUnknown CategoryType = -1

// CategoryTypeCodesVersion is bumped whenever a row is appended to
// categoryTypeCodes. Existing rows never change.
const CategoryTypeCodesVersion = 1

// categoryTypeCodes is the durable mapping between CategoryType and the
// INTEGER stored in the categories table. Code 0 is reserved and never
// written.
var categoryTypeCodes = []struct {
	Type  CategoryType
	Name  string
	Code  int64
	Since int
}{
	{CategoryExpense, "expense", 1, 1},
	{CategoryIncome, "income", 2, 1},
	{CategoryTransfer, "transfer", 3, 1},
}

// CategoryTypes lists every known type in code order.
func CategoryTypes() []CategoryType {
	out := make([]CategoryType, 0, len(categoryTypeCodes))
	for _, row := range categoryTypeCodes {
		out = append(out, row.Type)
	}
	return out
}

// Code returns the persisted code of t.
func (t CategoryType) Code() (int64, error) {
	for _, row := range categoryTypeCodes {
		if row.Type == t {
			return row.Code, nil
		}
	}
	return 0, fmt.Errorf("unknown category type %d", int(t))
}

// CategoryTypeFromCode is the inverse of Code.
func CategoryTypeFromCode(code int64) (CategoryType, error) {
	for _, row := range categoryTypeCodes {
		if row.Code == code {
			return row.Type, nil
		}
	}
	return 0, fmt.Errorf("unknown category type code %d", code)
}

// ParseCategoryType accepts a type name; "" means expense.
func ParseCategoryType(s string) (CategoryType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryExpense, nil
	}
	for _, row := range categoryTypeCodes {
		if row.Name == s {
			return row.Type, nil
		}
	}
	return 0, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown category type %q", s)}
}

func (t CategoryType) String() string {
	for _, row := range categoryTypeCodes {
		if row.Type == t {
			return row.Name
		}
	}
	return fmt.Sprintf("CategoryType(%d)", int(t))
}

func (t CategoryType) MarshalText() ([]byte, error) {
	if _, err := t.Code(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

func (t *CategoryType) UnmarshalText(b []byte) error {
	v, err := ParseCategoryType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category is a spending/income bucket. ID is assigned by the caller.
type Category struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Type  CategoryType `json:"type"`
}

func (c Category) Key() int64 { return c.ID }

// Validate rejects a category before it reaches the store.
func (c Category) Validate() error {
	if c.ID <= 0 {
		return &ValidationError{Field: "id", Reason: "must be positive"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !colorPattern.MatchString(c.Color) {
		return &ValidationError{Field: "color", Reason: fmt.Sprintf("%q is not #RRGGBB", c.Color)}
	}
	if _, err := c.Type.Code(); err != nil {
		return &ValidationError{Field: "type", Reason: err.Error()}
	}
	return nil
}
