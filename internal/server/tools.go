package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "ppm_info",
			Description: "Load a plain-text PPM (P3) image and return its dimensions, file size, and a color summary (average color, dominant colors, channel ranges, luminance).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the .ppm file",
					},
					"colors": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to report. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_validate",
			Description: "Check whether a file is a valid plain-text PPM (P3) image with maximum value 255. Invalid files report the reason and the offending token.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the .ppm file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_transform",
			Description: "Apply invert, high-contrast, or grayscale to a PPM image and write the result to a new .ppm file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input .ppm file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the .ppm file to write",
					},
					"operation": map[string]interface{}{
						"type":        "string",
						"description": "Transform to apply",
						"enum":        []string{"invert", "high-contrast", "grayscale"},
					},
					"overwrite": map[string]interface{}{
						"type":        "boolean",
						"description": "Replace output_path if it already exists. Default false",
						"default":     false,
					},
				},
				"required": []string{"path", "output_path", "operation"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
