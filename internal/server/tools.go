package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the tray photograph (.png, .jpg or .jpeg)",
	}
}

func screenProperties(props map[string]interface{}) map[string]interface{} {
	props["screen_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Screen width the image is shown on. Default from configuration (1920)",
	}
	props["screen_height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Screen height the image is shown on, before the configured control reserve is taken off. Default from configuration (1080)",
	}
	return props
}

// selectionProperties returns the schema shared by every tool that takes a
// tray selection.
func selectionProperties() map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty(),
		"x_start": map[string]interface{}{
			"type":        "number",
			"description": "X of the drag start in display coordinates",
		},
		"y_start": map[string]interface{}{
			"type":        "number",
			"description": "Y of the drag start in display coordinates",
		},
		"x_end": map[string]interface{}{
			"type":        "number",
			"description": "X of the drag end in display coordinates",
		},
		"y_end": map[string]interface{}{
			"type":        "number",
			"description": "Y of the drag end in display coordinates",
		},
		"scale_x": map[string]interface{}{
			"type":        "number",
			"description": "Native width / display width. Omit to derive it by fitting the image to the screen",
		},
		"scale_y": map[string]interface{}{
			"type":        "number",
			"description": "Native height / display height. Defaults to scale_x when only that is given",
		},
	}
	return screenProperties(props)
}

var selectionRequired = []string{"path", "x_start", "y_start", "x_end", "y_end"}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	analyzeProps := selectionProperties()
	analyzeProps["reference_file"] = map[string]interface{}{
		"type":        "string",
		"description": "Path to a .txt file with one well name per line, in well index order",
	}
	analyzeProps["output_folder"] = map[string]interface{}{
		"type":        "string",
		"description": "Folder for the results CSV",
	}
	analyzeProps["output_name"] = map[string]interface{}{
		"type":        "string",
		"description": "Results file name; .csv is appended when missing. Omit to skip writing a file",
	}

	return []Tool{
		// Image Information
		{
			Name:        "tray_load",
			Description: "Load a tray photograph and return its native dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tray_fit_display",
			Description: "Compute the display size of a tray photograph on a screen (aspect ratio preserved, the configured screen_reserve fraction of the height kept for controls) and the display-to-native scale factor.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": screenProperties(map[string]interface{}{"path": pathProperty()}),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "tray_preview",
			Description: "Return the tray photograph resized for display as base64 PNG, with the scale factor to send back with a selection.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": screenProperties(map[string]interface{}{"path": pathProperty()}),
				"required":   []string{"path"},
			},
		},

		// Analysis
		{
			Name:        "tray_analyze",
			Description: "Score the greenness of every well of the 4x6 tray inside a display-space selection and pair the scores with reference names. Optionally writes name,score rows to a CSV file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": analyzeProps,
				"required":   append(append([]string{}, selectionRequired...), "reference_file"),
			},
		},

		// Previews
		{
			Name:        "tray_grid_preview",
			Description: "Return the white-balanced selection with the 4x6 well grid and well indexes drawn on it, for checking that the selection lines up with the wells.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": selectionProperties(),
				"required":   selectionRequired,
			},
		},
		{
			Name:        "tray_mask_preview",
			Description: "Return the plant mask of a selection as a black and white PNG, for checking the threshold settings.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": selectionProperties(),
				"required":   selectionRequired,
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
