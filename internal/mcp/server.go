package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"memorytable/internal/cases"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with read-only lookup tools over the case table
func NewServer(svc *cases.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Monster Memory Table",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: list_categories - List all categories with case counts
	s.AddTool(
		mcp.NewTool("list_categories",
			mcp.WithDescription("List all case categories with the number of cases in each. Use this to find the category names accepted by the other tools."),
		),
		handleListCategories(svc),
	)

	// Tool: get_cases - Get the case table of a category
	s.AddTool(
		mcp.NewTool("get_cases",
			mcp.WithDescription("Get every case of a category: the card information and whether it is remembered or forgotten after being temporary banished or flipped face-down."),
			mcp.WithString("category",
				mcp.Required(),
				mcp.Description("Category name as returned by list_categories"),
			),
		),
		handleGetCases(svc),
	)

	// Tool: get_case_faqs - Get the rulings of one case
	s.AddTool(
		mcp.NewTool("get_case_faqs",
			mcp.WithDescription("Get the FAQ rulings recorded for one case, grouped by mechanic, with their sources."),
			mcp.WithString("category",
				mcp.Required(),
				mcp.Description("Category name as returned by list_categories"),
			),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Case ID within the category"),
			),
		),
		handleGetCaseFAQs(svc),
	)

	return s
}

// CaseResult represents a case without its FAQs
type CaseResult struct {
	ID                int    `json:"id"`
	Info              string `json:"info"`
	TemporaryBanished string `json:"temporaryBanished"`
	FlipFaceDown      string `json:"flipFaceDown"`
	FAQCount          int    `json:"faqCount"`
}

// FAQSectionResult lists the FAQs of one mechanic
type FAQSectionResult struct {
	Mechanic string      `json:"mechanic"`
	FAQs     []cases.FAQ `json:"faqs"`
}

func handleListCategories(svc *cases.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := json.MarshalIndent(svc.ListCategories(), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleGetCases(svc *cases.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := req.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError("category is required"), nil
		}

		items, err := svc.Cases(category)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get cases: %v", err)), nil
		}

		results := make([]CaseResult, len(items))
		for i, c := range items {
			results[i] = CaseResult{
				ID:                c.ID,
				Info:              c.Info,
				TemporaryBanished: string(c.TemporaryBanished),
				FlipFaceDown:      string(c.FlipFaceDown),
				FAQCount:          len(c.TemporaryBanishedFAQs) + len(c.FlipFaceDownFAQs),
			}
		}

		data, _ := json.MarshalIndent(results, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleGetCaseFAQs(svc *cases.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := req.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError("category is required"), nil
		}
		id, err := req.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		c, err := svc.Case(category, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get case: %v", err)), nil
		}

		// Mechanics without FAQs are left out, as in the FAQ dialog
		results := []FAQSectionResult{}
		for _, axis := range cases.Axes {
			if faqs := c.FAQs(axis); len(faqs) > 0 {
				results = append(results, FAQSectionResult{Mechanic: axis.Title(), FAQs: faqs})
			}
		}

		data, _ := json.MarshalIndent(results, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
