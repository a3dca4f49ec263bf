package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ludo-technologies/polyscan/domain"
)

type analyzeFileParams struct {
	Path    string  `json:"path"`
	Content *string `json:"content"`
}

type fileListParams struct {
	Files []analyzeFileParams `json:"files"`
}

var (
	errMissingPath    = errors.New("path is required")
	errMissingContent = errors.New("content is required")
)

func (p analyzeFileParams) validate() error {
	if p.Path == "" {
		return errMissingPath
	}
	if p.Content == nil {
		return errMissingContent
	}
	return nil
}

func decodeArgs(req *mcp.CallToolRequest, v interface{}) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return fmt.Errorf("invalid parameters: missing arguments")
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// decodeFiles parses and validates a files argument
func decodeFiles(req *mcp.CallToolRequest) ([]domain.FileInput, error) {
	var params fileListParams
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if params.Files == nil {
		return nil, fmt.Errorf("invalid parameters: files is required")
	}

	inputs := make([]domain.FileInput, 0, len(params.Files))
	for i, f := range params.Files {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("invalid parameters: files[%d]: %w", i, err)
		}
		inputs = append(inputs, domain.FileInput{Path: f.Path, Content: *f.Content})
	}
	return inputs, nil
}

func (s *Server) handleAnalyzeFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params analyzeFileParams
	if err := decodeArgs(req, &params); err != nil {
		return errorResult("analyze_file", err)
	}
	if err := params.validate(); err != nil {
		return errorResult("analyze_file", fmt.Errorf("invalid parameters: %w", err))
	}

	s.logger.WithField("path", params.Path).Debug("analyze_file")
	return jsonResult(s.engine.AnalyzeFile(ctx, params.Path, *params.Content))
}

func (s *Server) handleAnalyzeFiles(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := decodeFiles(req)
	if err != nil {
		return errorResult("analyze_files", err)
	}

	s.logger.WithField("files", len(files)).Debug("analyze_files")
	return jsonResult(map[string]interface{}{
		"results": s.engine.AnalyzeFiles(ctx, files),
	})
}

func (s *Server) handleCodebaseOverview(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := decodeFiles(req)
	if err != nil {
		return errorResult("codebase_overview", err)
	}

	s.logger.WithField("files", len(files)).Debug("codebase_overview")
	results := s.engine.AnalyzeFiles(ctx, files)
	return jsonResult(s.engine.GenerateOverview(results))
}

func (s *Server) handleSupportedLanguages(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"languages": s.engine.SupportedLanguages(),
	})
}
