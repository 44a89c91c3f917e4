package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/printarea-mcp/internal/calibrate"
	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/fetch"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "printarea_detect").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies server config defaults for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection/calibrate function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(ctx, args)
	case "image_dimensions":
		return s.handleImageDimensions(ctx, args)
	case "printarea_fetch":
		return s.handleFetch(ctx, args)

	// Detection
	case "printarea_detect":
		return s.handleDetect(ctx, args)
	case "printarea_sweep":
		return s.handleSweep(ctx, args)

	// Box Transforms
	case "printarea_pad_bbox":
		return s.handlePadBBox(args)
	case "printarea_scale_bbox":
		return s.handleScaleBBox(args)

	// Rendering
	case "printarea_average_luminance":
		return s.handleAverageLuminance(ctx, args)
	case "printarea_overlay":
		return s.handleOverlay(ctx, args)
	case "printarea_edge_map":
		return s.handleEdgeMap(ctx, args)

	// Pipeline
	case "printarea_calibrate":
		return s.handleCalibrate(ctx, args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if !fetch.IsURL(a.Path) {
		return imaging.LoadImageInfo(s.cache, a.Path)
	}

	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	d := s.download(a.Path)
	format := imaging.FormatFromContentType(d.contentType)
	if format == "unknown" {
		format = imaging.FormatFromPath(a.Path)
	}
	return imaging.NewImageInfo(img, format, d.size), nil
}

func (s *Server) handleImageDimensions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	return &imaging.DimensionsResult{Width: img.Width(), Height: img.Height()}, nil
}

type fetchArgs struct {
	URL string `json:"url"`
}

type fetchResult struct {
	URL              string  `json:"url"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	AverageLuminance float64 `json:"average_luminance"`
}

func (s *Server) handleFetch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a fetchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	// A repeated fetch refreshes the cached copy.
	s.cache.Evict(a.URL)
	img, err := s.loadImage(ctx, a.URL)
	if err != nil {
		return nil, err
	}
	return &fetchResult{
		URL:              a.URL,
		Width:            img.Width(),
		Height:           img.Height(),
		AverageLuminance: imaging.AverageLuminance(img),
	}, nil
}

// === Detection Handlers ===

type detectArgs struct {
	Path      string            `json:"path"`
	Threshold *float64          `json:"threshold"`
	Region    *detection.Region `json:"region"`
}

func (s *Server) handleDetect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold, region, err := s.detectParams(a.Threshold, a.Region)
	if err != nil {
		return nil, err
	}
	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	return detection.Detect(img, threshold, region), nil
}

type sweepArgs struct {
	Path       string             `json:"path"`
	Thresholds []float64          `json:"thresholds"`
	Regions    []detection.Region `json:"regions"`
	Workers    int                `json:"workers"`
}

type sweepResult struct {
	Results []detection.Result `json:"results"`
	Summary detection.Summary  `json:"summary"`
}

func (s *Server) handleSweep(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sweepArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Thresholds) == 0 {
		a.Thresholds = s.cfg.SweepThresholds
	}
	if len(a.Regions) == 0 {
		a.Regions = s.cfg.SweepRegions
	}
	if a.Workers <= 0 {
		a.Workers = s.cfg.Workers
	}
	for i, r := range a.Regions {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
	}

	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	results, err := detection.SweepParallel(ctx, img, a.Thresholds, a.Regions, a.Workers)
	if err != nil {
		return nil, err
	}
	return &sweepResult{Results: results, Summary: detection.Summarize(results)}, nil
}

// detectParams applies config defaults to optional detection arguments and
// validates the region.
func (s *Server) detectParams(threshold *float64, region *detection.Region) (float64, detection.Region, error) {
	t := s.cfg.Threshold
	if threshold != nil {
		t = *threshold
	}
	if t < 0 {
		return 0, detection.Region{}, fmt.Errorf("threshold must be >= 0, got %g", t)
	}
	r := s.cfg.Region
	if region != nil {
		r = *region
	}
	if err := r.Validate(); err != nil {
		return 0, detection.Region{}, err
	}
	return t, r, nil
}

// === Box Transform Handlers ===

type padBBoxArgs struct {
	BBox    imaging.BBox    `json:"bbox"`
	Padding imaging.Padding `json:"padding"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
}

type bboxResult struct {
	// BBox is nil when Present is false.
	BBox    *imaging.BBox `json:"bbox"`
	Present bool          `json:"present"`
}

func (s *Server) handlePadBBox(args json.RawMessage) (interface{}, error) {
	var a padBBoxArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", a.Width, a.Height)
	}
	box, ok := imaging.ApplyPadding(a.BBox, a.Padding, a.Width, a.Height)
	if !ok {
		return &bboxResult{}, nil
	}
	return &bboxResult{BBox: &box, Present: true}, nil
}

type scaleBBoxArgs struct {
	BBox   imaging.BBox `json:"bbox"`
	Factor float64      `json:"factor"`
}

func (s *Server) handleScaleBBox(args json.RawMessage) (interface{}, error) {
	var a scaleBBoxArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Factor <= 0 {
		return nil, fmt.Errorf("factor must be positive, got %g", a.Factor)
	}
	box := a.BBox.Scale(a.Factor)
	return &bboxResult{BBox: &box, Present: true}, nil
}

// === Rendering Handlers ===

type luminanceResult struct {
	AverageLuminance float64           `json:"average_luminance"`
	Dark             bool              `json:"dark"`
	Fill             imaging.FillStyle `json:"fill"`
	FillHex          string            `json:"fill_hex"`
}

func (s *Server) handleAverageLuminance(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	fill, err := s.selectFill(img)
	if err != nil {
		return nil, err
	}
	avg := imaging.AverageLuminance(img)
	return &luminanceResult{
		AverageLuminance: avg,
		Dark:             avg < s.cfg.DarkLuminanceCutoff,
		Fill:             fill,
		FillHex:          fill.Hex(),
	}, nil
}

func (s *Server) selectFill(img *imaging.Image) (imaging.FillStyle, error) {
	dark, light, err := s.cfg.Fills()
	if err != nil {
		return imaging.FillStyle{}, err
	}
	return imaging.SelectFillWith(img, s.cfg.DarkLuminanceCutoff, dark, light), nil
}

type overlayArgs struct {
	Path string       `json:"path"`
	BBox imaging.BBox `json:"bbox"`
	Fill string       `json:"fill"`
}

type imageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	Fill        string `json:"fill,omitempty"`
}

func (s *Server) handleOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BBox.W <= 0 || a.BBox.H <= 0 {
		return nil, fmt.Errorf("bbox must have positive size, got %s", a.BBox)
	}
	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}

	var fill imaging.FillStyle
	if a.Fill != "" {
		fill, err = imaging.ParseFillStyle(a.Fill, imaging.DarkBackgroundFill.A)
	} else {
		fill, err = s.selectFill(img)
	}
	if err != nil {
		return nil, err
	}

	out := imaging.RenderOverlay(img, a.BBox, fill)
	encoded, err := imaging.EncodeBase64PNG(out)
	if err != nil {
		return nil, err
	}
	return &imageResult{
		Width:       out.Width(),
		Height:      out.Height(),
		ImageBase64: encoded,
		Fill:        fill.Hex(),
	}, nil
}

func (s *Server) handleEdgeMap(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	edges := imaging.EdgeMap(img)
	encoded, err := imaging.EncodeBase64PNG(edges)
	if err != nil {
		return nil, err
	}
	return &imageResult{
		Width:       edges.Width(),
		Height:      edges.Height(),
		ImageBase64: encoded,
	}, nil
}

// === Pipeline Handler ===

type calibrateArgs struct {
	Path      string            `json:"path"`
	Threshold *float64          `json:"threshold"`
	Region    *detection.Region `json:"region"`
	Padding   *imaging.Padding  `json:"padding"`
	Scale     float64           `json:"scale"`
	Sweep     bool              `json:"sweep"`
	OutputDir string            `json:"output_dir"`
	EdgeMap   bool              `json:"edge_map"`
}

func (s *Server) handleCalibrate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a calibrateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := calibrate.OptionsFromConfig(s.cfg)
	if err != nil {
		return nil, err
	}
	opts.Threshold, opts.Region, err = s.detectParams(a.Threshold, a.Region)
	if err != nil {
		return nil, err
	}
	if a.Padding != nil {
		opts.Padding = *a.Padding
	}
	if a.Scale > 0 {
		opts.Scale = a.Scale
	}
	opts.Sweep = a.Sweep

	img, err := s.loadImage(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	out, err := calibrate.Run(ctx, img, a.Path, opts)
	if err != nil {
		return nil, err
	}

	if a.OutputDir != "" {
		if err := calibrate.WriteArtifacts(out, a.OutputDir, a.EdgeMap); err != nil {
			return nil, err
		}
	}
	return out.Report, nil
}
