package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file, or an http(s) URL",
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x0": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
			"x1": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
			"y0": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
			"y1": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
		},
		"required":    []string{"x0", "x1", "y0", "y1"},
		"description": description,
	}
}

func bboxProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "integer"},
			"y": map[string]interface{}{"type": "integer"},
			"w": map[string]interface{}{"type": "integer", "minimum": 1},
			"h": map[string]interface{}{"type": "integer", "minimum": 1},
		},
		"required":    []string{"x", "y", "w", "h"},
		"description": description,
	}
}

var paddingProperty = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"top":    map[string]interface{}{"type": "integer"},
		"right":  map[string]interface{}{"type": "integer"},
		"bottom": map[string]interface{}{"type": "integer"},
		"left":   map[string]interface{}{"type": "integer"},
	},
	"description": "Pixels added to each side (negative values shrink the box). Default from server config.",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file or URL and return its dimensions, format, transparency, average luminance and size in bytes. The image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "printarea_fetch",
			Description: "Download a preview image from an http(s) URL and cache it under that URL for other tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "http or https URL of the image",
					},
				},
				"required": []string{"url"},
			},
		},

		// Detection
		{
			Name:        "printarea_detect",
			Description: "Find the bounding box of strong luminance edges inside a search region. Returns hit count, max gradient and the box (absent when no pixel reaches the threshold).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum gradient magnitude (L1 Sobel) counted as an edge. Default from server config (120).",
					},
					"region": regionProperty("Search window as fractions of width and height. Default from server config."),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "printarea_sweep",
			Description: "Run detection for every threshold/region combination (regions outer, thresholds inner) and summarize the boxes found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"thresholds": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Thresholds to try. Default [80,100,120,140,160].",
					},
					"regions": map[string]interface{}{
						"type":        "array",
						"items":       regionProperty("Search window"),
						"description": "Search windows to try. Default from server config.",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Parallel detections. 0 uses all CPUs.",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Box Transforms
		{
			Name:        "printarea_pad_bbox",
			Description: "Expand or shrink a box by per-side padding and clamp it to the image. Reports present=false when the result is empty.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"bbox":    bboxProperty("Box to pad"),
					"padding": paddingProperty,
					"width":   map[string]interface{}{"type": "integer", "description": "Image width"},
					"height":  map[string]interface{}{"type": "integer", "description": "Image height"},
				},
				"required": []string{"bbox", "padding", "width", "height"},
			},
		},
		{
			Name:        "printarea_scale_bbox",
			Description: "Multiply every box coordinate by a factor, rounding to the nearest pixel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"bbox": bboxProperty("Box to scale"),
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor, e.g. 2 for a 2x render",
					},
				},
				"required": []string{"bbox", "factor"},
			},
		},

		// Rendering
		{
			Name:        "printarea_average_luminance",
			Description: "Sample the image's mean luminance (every 8th pixel, transparent pixels skipped) and report which overlay fill it selects.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "printarea_overlay",
			Description: "Highlight a box on a copy of the image with a translucent fill and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"bbox": bboxProperty("Box to highlight"),
					"fill": map[string]interface{}{
						"type":        "string",
						"description": "Fill color as #RRGGBB or #RRGGBBAA. Default: chosen from average luminance.",
					},
				},
				"required": []string{"path", "bbox"},
			},
		},
		{
			Name:        "printarea_edge_map",
			Description: "Return a Sobel edge map of the image as base64-encoded PNG, for inspecting what the detector sees.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Pipeline
		{
			Name:        "printarea_calibrate",
			Description: "Run the full calibration: detect, pad, scale, optionally sweep, pick an overlay fill and build a report. With output_dir, writes report.json and overlay.png there.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Detection threshold. Default from server config.",
					},
					"region":  regionProperty("Search window. Default from server config."),
					"padding": paddingProperty,
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Factor applied to the padded box. Default from server config (1).",
					},
					"sweep": map[string]interface{}{
						"type":        "boolean",
						"description": "Also run the threshold/region sweep",
						"default":     false,
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for report.json and overlay.png. Omit to return the report only.",
					},
					"edge_map": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write edges.png to output_dir",
						"default":     false,
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
