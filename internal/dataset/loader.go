package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"memorytable/internal/cases"
)

var ErrMalformedDataset = errors.New("malformed dataset")

var validate = validator.New(validator.WithRequiredStructEnabled())

// document is the top level of the dataset file.
type document struct {
	Categories []cases.Category `validate:"min=1,dive"`
}

// Load decodes and validates the embedded dataset.
func Load() (*cases.Dataset, error) {
	f, err := dataFS.Open(FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file %s: %w", FileName, err)
	}
	defer f.Close()

	return Parse(f)
}

// MustLoad loads the embedded dataset, panicking on error.
func MustLoad() *cases.Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}

// Parse decodes and validates a dataset. Any missing field, wrong type,
// unknown field or unknown status fails the whole load.
func Parse(r io.Reader) (*cases.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc.Categories); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrMalformedDataset, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after category list", ErrMalformedDataset)
	}

	if err := check(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	return cases.NewDataset(doc.Categories), nil
}

func check(doc document) error {
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return describe(verrs)
		}
		return err
	}

	names := make(map[string]bool, len(doc.Categories))
	for _, cat := range doc.Categories {
		if names[cat.Name] {
			return fmt.Errorf("duplicate category name %q", cat.Name)
		}
		names[cat.Name] = true

		ids := make(map[int]bool, len(cat.Items))
		for i, c := range cat.Items {
			if ids[c.ID] {
				return fmt.Errorf("category %q: item %d: duplicate id %d", cat.Name, i, c.ID)
			}
			ids[c.ID] = true
		}
	}
	return nil
}

func describe(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "document.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
