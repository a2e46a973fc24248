package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorytable/internal/cases"
)

func testService() *cases.Service {
	return cases.NewService(cases.NewDataset([]cases.Category{
		{
			Name: "Test",
			Items: []cases.Case{
				{
					ID:                    1,
					Info:                  "Card X",
					TemporaryBanished:     cases.Remembered,
					FlipFaceDown:          cases.Forgotten,
					TemporaryBanishedFAQs: []cases.FAQ{},
					FlipFaceDownFAQs: []cases.FAQ{{
						Question: "Q1",
						Answer:   "A1",
						Sources:  []cases.Source{{Text: "Ruling", URL: "https://example.com"}},
					}},
				},
			},
		},
		{Name: "Other", Items: []cases.Case{}},
	}))
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(testService()))
}

func TestListCategories(t *testing.T) {
	res := call(t, handleListCategories(testService()), nil)
	require.False(t, res.IsError)

	var got []cases.CategorySummary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, []cases.CategorySummary{{Name: "Test", Count: 1}, {Name: "Other", Count: 0}}, got)
}

func TestGetCases(t *testing.T) {
	res := call(t, handleGetCases(testService()), map[string]any{"category": "Test"})
	require.False(t, res.IsError)

	var got []CaseResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, CaseResult{ID: 1, Info: "Card X", TemporaryBanished: "Remembered", FlipFaceDown: "Forgotten", FAQCount: 1}, got[0])
}

func TestGetCasesErrors(t *testing.T) {
	res := call(t, handleGetCases(testService()), map[string]any{})
	assert.True(t, res.IsError)

	res = call(t, handleGetCases(testService()), map[string]any{"category": "Nope"})
	assert.True(t, res.IsError)
}

func TestGetCaseFAQs(t *testing.T) {
	res := call(t, handleGetCaseFAQs(testService()), map[string]any{"category": "Test", "id": float64(1)})
	require.False(t, res.IsError)

	var got []FAQSectionResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Flipped Face-Down", got[0].Mechanic)
	require.Len(t, got[0].FAQs, 1)
	assert.Equal(t, "https://example.com", got[0].FAQs[0].Sources[0].URL)
}

func TestGetCaseFAQsErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing id", map[string]any{"category": "Test"}},
		{"unknown id", map[string]any{"category": "Test", "id": float64(7)}},
		{"unknown category", map[string]any{"category": "Nope", "id": float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, handleGetCaseFAQs(testService()), tt.args)
			assert.True(t, res.IsError)
		})
	}
}
