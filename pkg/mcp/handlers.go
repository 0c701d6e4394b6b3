package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// componentSummary is the compact listing shape for list/search responses.
type componentSummary struct {
	Name        string `json:"name"`
	FilePath    string `json:"file_path"`
	Description string `json:"description,omitempty"`
	PropCount   int    `json:"prop_count"`
	UsageCount  int    `json:"usage_count,omitempty"`
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries := make([]componentSummary, 0, len(s.doc.Components))
	for _, comp := range s.doc.Components {
		summaries = append(summaries, componentSummary{
			Name:        comp.Name,
			FilePath:    comp.FilePath,
			Description: comp.Description,
			PropCount:   len(comp.Props),
			UsageCount:  comp.UsageCount,
		})
	}
	return jsonResult(summaries)
}

func (s *Server) handleGetComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: name"), nil
	}
	comp := s.lookup(name)
	if comp == nil {
		return mcp.NewToolResultError(fmt.Sprintf("component not found: %s", name)), nil
	}
	return jsonResult(comp)
}

func (s *Server) handleSearchComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: query"), nil
	}
	matches := s.search(query)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no components found for %q", query)), nil
	}

	summaries := make([]componentSummary, 0, len(matches))
	for _, comp := range matches {
		summaries = append(summaries, componentSummary{
			Name:        comp.Name,
			FilePath:    comp.FilePath,
			Description: comp.Description,
			PropCount:   len(comp.Props),
		})
	}
	return jsonResult(summaries)
}

func (s *Server) handleDocumentInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := map[string]any{
		"generated_at":    s.doc.GeneratedAt.Format(time.RFC3339),
		"component_dir":   s.doc.ComponentDir,
		"component_count": len(s.doc.Components),
		"path_alias":      s.doc.PathAlias,
	}
	return jsonResult(info)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
