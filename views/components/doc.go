// Package components holds the templ components of the case table.
package components

//go:generate templ generate
