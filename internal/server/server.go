package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ironsheep/printarea-mcp/internal/config"
	"github.com/ironsheep/printarea-mcp/internal/fetch"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
	"github.com/ironsheep/printarea-mcp/internal/logging"
)

// Version is reported in the initialize response. main overrides it from
// build flags.
var Version = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	cfg     *config.Config
	fetcher *fetch.Client

	mu        sync.Mutex
	downloads map[string]download
}

// download records what the server knows about an image it fetched by URL.
type download struct {
	contentType string
	size        int64
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with the default configuration.
func New() *Server {
	return NewWithConfig(config.DefaultConfig())
}

// NewWithConfig creates a server whose tool defaults come from cfg.
func NewWithConfig(cfg *config.Config) *Server {
	return &Server{
		cache:     imaging.NewImageCache(),
		cfg:       cfg,
		downloads: make(map[string]download),
		fetcher: fetch.NewClient(fetch.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
			MaxBytes:  cfg.MaxDownloadBytes,
		}),
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(context.Background(), os.Stdin, os.Stdout)
}

// Serve reads line-delimited JSON-RPC requests from r and writes responses
// to w until r is exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}
		logging.Debugf("request %v: %s", req.ID, req.Method)

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "printarea-mcp",
				"version": Version,
			},
		},
	}
}

// loadImage returns the image at location from the cache, reading it from
// disk or downloading it when location is an http(s) URL.
func (s *Server) loadImage(ctx context.Context, location string) (*imaging.Image, error) {
	if location == "" {
		return nil, fmt.Errorf("path is required")
	}
	if !fetch.IsURL(location) {
		return s.cache.Load(location)
	}
	if img, ok := s.cache.Get(location); ok {
		return img, nil
	}
	resp, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	img, err := imaging.DecodeBytes(resp.Body)
	if err != nil {
		return nil, err
	}
	s.cache.Put(location, img)

	s.mu.Lock()
	s.downloads[location] = download{contentType: resp.ContentType, size: int64(len(resp.Body))}
	s.mu.Unlock()
	return img, nil
}

// download returns the recorded metadata for a URL, or the zero value when
// the image was not fetched by this server.
func (s *Server) download(location string) download {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloads[location]
}
