package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List extracted components with their file paths and prop counts"),
	)
}

func getComponentTool() mcp.Tool {
	return mcp.NewTool("get_component",
		mcp.WithDescription("Get the full metadata of one component: props, classifications, defaults, examples, wrappers"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Component display name, e.g. \"Button\""),
		),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool("search_components",
		mcp.WithDescription("Search components by name or description keyword"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive keyword"),
		),
	)
}

func documentInfoTool() mcp.Tool {
	return mcp.NewTool("get_document_info",
		mcp.WithDescription("Get run metadata of the loaded document: generation time, source glob, path aliases, component count"),
	)
}
