package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/propview/pkg/mcp"
	"github.com/gnana997/propview/pkg/meta"
)

var metaPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an extracted metadata document over MCP stdio",
	Long: `Loads a previously extracted components.json document and exposes it
to MCP clients over stdio: listing, lookup, and keyword search tools.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&metaPath, "meta", filepath.Join("generated", "components.json"), "path to the metadata document")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	path := metaPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}

	doc, err := meta.LoadDocument(path)
	if err != nil {
		return fmt.Errorf("loading metadata document: %w", err)
	}

	return mcp.NewServer(doc, logger).ServeStdio()
}
