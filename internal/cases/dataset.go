package cases

import (
	"errors"
	"fmt"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCaseNotFound     = errors.New("case not found")
)

// Dataset is the read-only, load-once collection of categories. It is built
// once at startup and shared by pointer; nothing mutates it afterwards.
type Dataset struct {
	categories []Category
	byName     map[string]int
}

// NewDataset indexes categories by name. The caller hands over ownership of
// the slice and must not modify it afterwards.
func NewDataset(categories []Category) *Dataset {
	ds := &Dataset{
		categories: categories,
		byName:     make(map[string]int, len(categories)),
	}
	for i, c := range categories {
		ds.byName[c.Name] = i
	}
	return ds
}

// Categories returns all categories in dataset order.
func (d *Dataset) Categories() []Category {
	return d.categories
}

// Names returns category names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.categories))
	for i, c := range d.categories {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of categories.
func (d *Dataset) Len() int {
	return len(d.categories)
}

// First returns the first category. It panics on an empty dataset, which
// the loader never produces.
func (d *Dataset) First() Category {
	return d.categories[0]
}

// Category looks a category up by name.
func (d *Dataset) Category(name string) (Category, error) {
	i, ok := d.byName[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}
	return d.categories[i], nil
}

// Case looks up a case by category name and case ID.
func (d *Dataset) Case(category string, id int) (Case, error) {
	cat, err := d.Category(category)
	if err != nil {
		return Case{}, err
	}
	for _, c := range cat.Items {
		if c.ID == id {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("%w: %q/%d", ErrCaseNotFound, category, id)
}
