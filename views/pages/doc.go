// Package pages holds full-page templ components.
package pages

//go:generate templ generate
