// Package mcpserver exposes the analysis engine as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/internal/constants"
	"github.com/ludo-technologies/polyscan/internal/version"
	"github.com/ludo-technologies/polyscan/service"
)

// Server wraps an MCP server bound to one engine
type Server struct {
	engine *service.Engine
	logger *logrus.Logger
	server *mcp.Server
}

// New creates a server and registers the analysis tools
func New(engine *service.Engine, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		engine: engine,
		logger: logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    constants.ToolName,
			Version: version.GetVersion(),
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves requests on stdin/stdout until ctx is done or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	if !s.engine.Initialize() {
		s.logger.Warn("parsing runtime unavailable, using fallback extraction")
	}
	s.logger.Info("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

var fileListSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"files": {
			Type:        "array",
			Description: "Files to analyze, in order",
			Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"path":    {Type: "string", Description: "File path; its extension selects the language"},
					"content": {Type: "string", Description: "Full file content"},
				},
				Required: []string{"path", "content"},
			},
		},
	},
	Required: []string{"files"},
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_file",
		Description: "Extract classes, functions and methods from one file and compute its quality metrics.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path":    {Type: "string", Description: "File path; its extension selects the language"},
				"content": {Type: "string", Description: "Full file content"},
			},
			Required: []string{"path", "content"},
		},
	}, s.handleAnalyzeFile)

	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_files",
		Description: "Analyze many files. Results are returned in input order.",
		InputSchema: fileListSchema,
	}, s.handleAnalyzeFiles)

	s.server.AddTool(&mcp.Tool{
		Name:        "codebase_overview",
		Description: "Analyze many files and return the aggregated codebase overview.",
		InputSchema: fileListSchema,
	}, s.handleCodebaseOverview)

	s.server.AddTool(&mcp.Tool{
		Name:        "supported_languages",
		Description: "List detected languages, their extensions and whether a grammar is loaded.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleSupportedLanguages)
}

// jsonResult renders data as a single JSON text content
func jsonResult(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(content)}},
	}, nil
}

// errorResult reports a tool failure inside the result so the client sees it
func errorResult(tool string, err error) (*mcp.CallToolResult, error) {
	res, marshalErr := jsonResult(map[string]interface{}{
		"success": false,
		"tool":    tool,
		"error":   err.Error(),
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	res.IsError = true
	return res, nil
}
