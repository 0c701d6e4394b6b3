// Package mcp exposes an extracted metadata document over the Model Context
// Protocol so agent tooling can query component shapes without re-running
// extraction.
package mcp

import (
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/propview/pkg/meta"
)

const serverVersion = "0.1.0-dev"

// Server wraps an MCP server over one loaded metadata document.
type Server struct {
	mcpServer *server.MCPServer
	doc       *meta.Document
	byName    map[string]*meta.ComponentMeta
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by a validated document.
// Logger may be nil.
func NewServer(doc *meta.Document, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		doc:    doc,
		byName: make(map[string]*meta.ComponentMeta, len(doc.Components)),
		logger: logger,
	}
	for i := range doc.Components {
		s.byName[doc.Components[i].Name] = &doc.Components[i]
	}

	s.mcpServer = server.NewMCPServer(
		"propview",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentTool(), Handler: s.handleGetComponent},
		server.ServerTool{Tool: searchComponentsTool(), Handler: s.handleSearchComponents},
		server.ServerTool{Tool: documentInfoTool(), Handler: s.handleDocumentInfo},
	)

	return s
}

// ServeStdio starts the server on stdin/stdout and blocks until the client
// disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving metadata over MCP", "components", len(s.doc.Components))
	return server.ServeStdio(s.mcpServer)
}

// lookup resolves a component by exact name.
func (s *Server) lookup(name string) *meta.ComponentMeta {
	return s.byName[name]
}

// search matches components whose name or description contains the query,
// case insensitive. Name matches sort ahead of description matches by
// construction: names are scanned first.
func (s *Server) search(query string) []*meta.ComponentMeta {
	query = strings.ToLower(query)
	var matches []*meta.ComponentMeta
	seen := make(map[string]bool)

	for i := range s.doc.Components {
		comp := &s.doc.Components[i]
		if strings.Contains(strings.ToLower(comp.Name), query) {
			matches = append(matches, comp)
			seen[comp.Name] = true
		}
	}
	for i := range s.doc.Components {
		comp := &s.doc.Components[i]
		if seen[comp.Name] {
			continue
		}
		if strings.Contains(strings.ToLower(comp.Description), query) {
			matches = append(matches, comp)
		}
	}
	return matches
}
