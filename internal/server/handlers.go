package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/ppm-editor/internal/editor"
	"github.com/ironsheep/ppm-editor/internal/imaging"
	"github.com/ironsheep/ppm-editor/internal/ppm"
)

// defaultColorCount is the number of dominant colors ppm_info reports when
// the caller does not ask for a specific count.
const defaultColorCount = 5

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "ppm_info", "ppm_transform").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "ppm_info":
		return s.handlePPMInfo(args)
	case "ppm_validate":
		return s.handlePPMValidate(args)
	case "ppm_transform":
		return s.handlePPMTransform(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type ppmInfoArgs struct {
	Path   string `json:"path"`
	Colors int    `json:"colors"`
}

func (s *Server) handlePPMInfo(args json.RawMessage) (interface{}, error) {
	var a ppmInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Colors == 0 {
		a.Colors = defaultColorCount
	}
	return imaging.Describe(s.cache, a.Path, a.Colors)
}

type ppmValidateArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePPMValidate(args json.RawMessage) (interface{}, error) {
	var a ppmValidateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.Validate(a.Path)
}

type ppmTransformArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Operation  string `json:"operation"`
	Overwrite  bool   `json:"overwrite"`
}

// ppmTransformResult reports a completed transform.
type ppmTransformResult struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Operation  string `json:"operation"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

func (s *Server) handlePPMTransform(args json.RawMessage) (interface{}, error) {
	var a ppmTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	op, err := ppm.ParseOperation(a.Operation)
	if err != nil {
		return nil, err
	}

	err = s.editor.Run(editor.Options{
		Operation:  op,
		InputPath:  a.Path,
		OutputPath: a.OutputPath,
		AssumeYes:  a.Overwrite,
	})
	if errors.Is(err, editor.ErrOverwriteDeclined) {
		return nil, fmt.Errorf("%s already exists; set overwrite to replace it", a.OutputPath)
	}
	if err != nil {
		return nil, err
	}

	// The output may be a file that was cached before this call.
	s.cache.Evict(a.OutputPath)

	g, err := s.cache.Load(a.OutputPath)
	if err != nil {
		return nil, err
	}

	return &ppmTransformResult{
		Path:       a.Path,
		OutputPath: a.OutputPath,
		Operation:  op.String(),
		Width:      g.Cols(),
		Height:     g.Rows(),
	}, nil
}
