package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "face_detect",
			Description: "Detect faces in an image. Returns every candidate, the selected face and the padded crop region that face_crop would write, without writing anything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "face_crop",
			Description: "Detect the dominant face in an image, crop it with padding and save it. The output format follows the output file extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_path":  pathProperty("Absolute path to the source image"),
					"output_path": pathProperty("Absolute path for the cropped face (.jpg, .png, .gif, .tif or .bmp)"),
					"padding": map[string]interface{}{
						"type":        "number",
						"description": "Padding around the face as a fraction of its width (e.g. 0.2). Defaults to the server profile.",
						"minimum":     0,
					},
				},
				"required": []string{"input_path", "output_path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_ocr",
			Description: "Extract the text of a document image with Tesseract, with word bounding boxes and confidence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default \"eng\"",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
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
