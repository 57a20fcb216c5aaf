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
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Detection
		{
			Name:        "regions_find",
			Description: "Find the bounding rectangle of every opaque (alpha > 0) region in an image. Rectangles are (x, y, w, h) with both edges inclusive: the region covers columns x..x+w and rows y..y+h. Results are in raster order of discovery.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"max_steps": map[string]interface{}{
						"type":        "integer",
						"description": "Optional cap on boundary trace steps. 0 uses the server default.",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "regions_find_batch",
			Description: "Run regions_find on several images concurrently. Results keep the input order; a failing image reports an error without failing the batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the image files",
					},
					"max_steps": map[string]interface{}{
						"type":        "integer",
						"description": "Optional cap on boundary trace steps. 0 uses the server default.",
						"default":     0,
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "regions_overlay",
			Description: "Detect regions and render them as an overlay image of the same size: covered pixels get the overlay alpha, everything else is transparent. Saves to output_path if given, otherwise returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional output file (.png, .jpg, .bmp)",
					},
					"alpha": map[string]interface{}{
						"type":        "integer",
						"description": "Overlay alpha 1-255. Default 205",
						"default":     205,
					},
					"tint": map[string]interface{}{
						"type":        "string",
						"description": "Optional hex color (e.g. \"#ff0000\") for covered pixels",
					},
					"max_steps": map[string]interface{}{
						"type":        "integer",
						"description": "Optional cap on boundary trace steps. 0 uses the server default.",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "regions_extract",
			Description: "Detect regions and save each one as its own PNG in output_dir, named <prefix>_<index>.png in discovery order. Useful for slicing sprite sheets.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write the region images to (created if missing)",
					},
					"prefix": map[string]interface{}{
						"type":        "string",
						"description": "File name prefix. Defaults to the input file name without extension",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for each region (e.g., 2.0 for 2x zoom). Default 1.0",
						"default":     1.0,
					},
					"max_steps": map[string]interface{}{
						"type":        "integer",
						"description": "Optional cap on boundary trace steps. 0 uses the server default.",
						"default":     0,
					},
				},
				"required": []string{"path", "output_dir"},
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
