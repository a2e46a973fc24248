package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorytable/internal/snapshot"
	"memorytable/views/models"
)

func TestHomePage(t *testing.T) {
	var sb strings.Builder
	err := HomePage(models.PageView{
		Title:         "Title & more",
		Notice:        "Notice",
		ContributeURL: "https://github.com/satellaa/monster-memory-cases",
		Categories:    []string{"Monster", "Attack"},
		Table:         models.TableView{Category: "Attack"},
	}).Render(context.Background(), &sb)
	require.NoError(t, err)
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<h1 class="card-title">Title &amp; more</h1>`)
	assert.Contains(t, out, `href="/export.png?category=Attack" download="`+snapshot.FileName+`"`)
	assert.Contains(t, out, `<option value="Attack" selected>Attack</option>`)
	assert.Contains(t, out, `<a class="contribute-link" href="https://github.com/satellaa/monster-memory-cases" target="_blank" rel="noopener noreferrer">`)

	// The contribution link sits after the capture region
	assert.Greater(t, strings.Index(out, "contribute-link"), strings.Index(out, `id="case-table"`))
}
