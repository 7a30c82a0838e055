package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the documentation corpus semantically. Returns the most relevant documents with similarity scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// askDocsTool defines the ask_docs MCP tool.
var askDocsTool = mcp.NewTool("ask_docs",
	mcp.WithDescription("Ask a question about the documentation. Retrieves relevant passages and returns a grounded answer."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
)
