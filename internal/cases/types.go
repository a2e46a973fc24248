package cases

import (
	"encoding/json"
	"fmt"
)

// MemoryStatus records whether a monster keeps its information after a
// state-changing event.
type MemoryStatus string

const (
	Remembered    MemoryStatus = "Remembered"
	Forgotten     MemoryStatus = "Forgotten"
	ReferToRuling MemoryStatus = "Refer to ruling"
)

// Statuses lists every MemoryStatus in display order.
var Statuses = []MemoryStatus{Remembered, Forgotten, ReferToRuling}

// Valid reports whether s is one of the known statuses.
func (s MemoryStatus) Valid() bool {
	switch s {
	case Remembered, Forgotten, ReferToRuling:
		return true
	}
	return false
}

func (s *MemoryStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("memory status must be a string: %w", err)
	}
	status := MemoryStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("unknown memory status %q", raw)
	}
	*s = status
	return nil
}

// Source is a labelled reference backing an FAQ answer.
type Source struct {
	Text string `json:"text" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

// FAQ is a ruling clarification. Question and Answer are markdown.
type FAQ struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Sources  []Source `json:"sources" validate:"required,dive"`
}

// Case is one table row: a card's memory behaviour under both mechanics.
type Case struct {
	ID                    int          `json:"id" validate:"gte=0"`
	Info                  string       `json:"info" validate:"required"`
	TemporaryBanished     MemoryStatus `json:"temporaryBanished" validate:"required"`
	FlipFaceDown          MemoryStatus `json:"flipFaceDown" validate:"required"`
	TemporaryBanishedFAQs []FAQ        `json:"temporaryBanishedFAQs" validate:"required,dive"`
	FlipFaceDownFAQs      []FAQ        `json:"flipFaceDownFAQs" validate:"required,dive"`
}

// FAQs returns the FAQ list recorded for the given axis.
func (c Case) FAQs(axis Axis) []FAQ {
	switch axis {
	case AxisTemporaryBanished:
		return c.TemporaryBanishedFAQs
	case AxisFlipFaceDown:
		return c.FlipFaceDownFAQs
	}
	return nil
}

// Status returns the status recorded for the given axis.
func (c Case) Status(axis Axis) MemoryStatus {
	switch axis {
	case AxisTemporaryBanished:
		return c.TemporaryBanished
	case AxisFlipFaceDown:
		return c.FlipFaceDown
	}
	return ""
}

// Category groups cases under a unique name.
type Category struct {
	Name  string `json:"name" validate:"required"`
	Items []Case `json:"items" validate:"required,dive"`
}

// Axis identifies one of the two game mechanics a case is recorded for.
type Axis int

const (
	AxisTemporaryBanished Axis = iota
	AxisFlipFaceDown
)

// Axes lists both axes in the order they are displayed.
var Axes = []Axis{AxisTemporaryBanished, AxisFlipFaceDown}

// Title is the section heading used for the axis.
func (a Axis) Title() string {
	switch a {
	case AxisTemporaryBanished:
		return "Temporary Banished"
	case AxisFlipFaceDown:
		return "Flipped Face-Down"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}
