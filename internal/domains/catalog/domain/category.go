package domain

import (
	"errors"
	"regexp"
	"strings"
)

var ErrEmptyCategoryName = errors.New("category name is required")

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Category groups products on the storefront.
type Category struct {
	ID   string
	Name string
	Slug string
}

// NewCategory builds a category and derives its slug from the name.
func NewCategory(id, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	return &Category{ID: id, Name: name, Slug: Slugify(name)}, nil
}

// Slugify lower-cases a name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(slugSeparators.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
