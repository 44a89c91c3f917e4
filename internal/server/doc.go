// Package server implements the MCP (Model Context Protocol) server for
// print-area calibration.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - printarea_fetch: Download and cache a preview image by URL
//
// Detection:
//   - printarea_detect: Gradient bounding box in a search region
//   - printarea_sweep: Detect over a threshold/region grid and summarize
//
// Box Transforms:
//   - printarea_pad_bbox: Pad and clamp a box
//   - printarea_scale_bbox: Scale a box for a different render size
//
// Rendering:
//   - printarea_average_luminance: Sampled luminance and fill selection
//   - printarea_overlay: Highlight a box on the image
//   - printarea_edge_map: Sobel edge map for inspection
//
// Pipeline:
//   - printarea_calibrate: Detect, pad, scale, sweep, overlay and report
//
// # Image Caching
//
// Images are cached by path, or by URL for downloads, and reused across tool
// calls for the lifetime of the server process.
//
// # Defaults
//
// Optional tool arguments (threshold, region, padding, scale, sweep presets,
// fills) default to the config.Config the server was created with.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.NewWithConfig(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
