package paper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobinette/raddaran/errors"
)

type Category string

const (
	CategoryComputerScience Category = "Computer Science"
	CategoryMathematics     Category = "Mathematics"
	CategoryPhysics         Category = "Physics"
	CategoryEngineering     Category = "Engineering"
)

// Categories lists the categories in display order.
func Categories() []Category {
	return []Category{
		CategoryComputerScience,
		CategoryMathematics,
		CategoryPhysics,
		CategoryEngineering,
	}
}

func (c Category) Valid() bool {
	for _, category := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// ParseCategory accepts a category regardless of case, spaces, dashes and
// underscores: "computer_science" and "ComputerScience" both map to
// CategoryComputerScience.
func ParseCategory(s string) (Category, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.New("category is required", errors.BadRequest())
	}

	key := compact(s)
	for _, category := range Categories() {
		if compact(string(category)) == key {
			return category, nil
		}
	}
	return "", errors.New(fmt.Sprintf("unknown category %q", s), errors.BadRequest())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	category, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = category
	return nil
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
