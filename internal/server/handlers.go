package server

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/alpha-regions/internal/detection"
	"github.com/ironsheep/alpha-regions/internal/imaging"
	"github.com/ironsheep/alpha-regions/internal/report"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "regions_find").
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
		if s.cfg.Debug() {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
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
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Detection
	case "regions_find":
		return s.handleRegionsFind(args)
	case "regions_find_batch":
		return s.handleRegionsFindBatch(args)
	case "regions_overlay":
		return s.handleRegionsOverlay(args)
	case "regions_extract":
		return s.handleRegionsExtract(args)

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

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Detection Handlers ===

// RegionsResult is the outcome of region detection on one image.
type RegionsResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	report.Result
}

// findRegions loads path through the cache and runs detection on its mask.
func (s *Server) findRegions(path string, maxSteps int) (*RegionsResult, error) {
	mask, err := imaging.LoadMask(s.cache, path)
	if err != nil {
		return nil, err
	}

	if maxSteps <= 0 {
		maxSteps = s.cfg.MaxSteps
	}
	rects, err := detection.FindRegions(mask, detection.WithMaxSteps(maxSteps))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	w, h := mask.Dimensions()
	if s.cfg.Debug() {
		log.Printf("%s: %dx%d, %d opaque pixels, %d regions", path, w, h, mask.Count(), len(rects))
	}

	return &RegionsResult{
		Path:   path,
		Width:  w,
		Height: h,
		Result: report.NewResult(rects),
	}, nil
}

type regionsFindArgs struct {
	Path     string `json:"path"`
	MaxSteps int    `json:"max_steps"`
}

func (s *Server) handleRegionsFind(args json.RawMessage) (interface{}, error) {
	var a regionsFindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.findRegions(a.Path, a.MaxSteps)
}

type regionsFindBatchArgs struct {
	Paths    []string `json:"paths"`
	MaxSteps int      `json:"max_steps"`
}

// BatchEntry is one image's outcome in a batch. Exactly one of Result and
// Error is set.
type BatchEntry struct {
	Path   string         `json:"path"`
	Result *RegionsResult `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// BatchResult holds batch entries in request order.
type BatchResult struct {
	Entries []BatchEntry `json:"entries"`
	Failed  int          `json:"failed"`
}

func (s *Server) handleRegionsFindBatch(args json.RawMessage) (interface{}, error) {
	var a regionsFindBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}

	entries := make([]BatchEntry, len(a.Paths))

	var g errgroup.Group
	g.SetLimit(s.cfg.BatchWorkers)
	for i, path := range a.Paths {
		i, path := i, path
		g.Go(func() error {
			entries[i].Path = path
			res, err := s.findRegions(path, a.MaxSteps)
			if err != nil {
				entries[i].Error = err.Error()
				return nil
			}
			entries[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
	}

	return &BatchResult{Entries: entries, Failed: failed}, nil
}

type regionsOverlayArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Alpha      int    `json:"alpha"`
	Tint       string `json:"tint"`
	MaxSteps   int    `json:"max_steps"`
}

// OverlayResult describes a rendered overlay. Image is set only when no
// output path was given.
type OverlayResult struct {
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
	Regions    []detection.Rect      `json:"regions"`
	Count      int                   `json:"count"`
}

func (s *Server) handleRegionsOverlay(args json.RawMessage) (interface{}, error) {
	var a regionsOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	alpha := s.cfg.Overlay.Alpha
	if a.Alpha != 0 {
		if a.Alpha < 1 || a.Alpha > 255 {
			return nil, fmt.Errorf("alpha must be between 1 and 255, got %d", a.Alpha)
		}
		alpha = uint8(a.Alpha)
	}

	tintHex := a.Tint
	if tintHex == "" {
		tintHex = s.cfg.Overlay.Tint
	}
	tint, err := imaging.ParseTint(tintHex)
	if err != nil {
		return nil, err
	}

	found, err := s.findRegions(a.Path, a.MaxSteps)
	if err != nil {
		return nil, err
	}

	img := imaging.RenderOverlay(found.Width, found.Height, found.Regions, imaging.OverlayOptions{
		Alpha: alpha,
		Tint:  tint,
	})

	result := &OverlayResult{
		OutputPath: a.OutputPath,
		Regions:    found.Regions,
		Count:      found.Count,
	}

	if a.OutputPath != "" {
		if err := imaging.SaveImage(a.OutputPath, img); err != nil {
			return nil, err
		}
		return result, nil
	}

	encoded, err := imaging.EncodePNGBase64(img)
	if err != nil {
		return nil, err
	}
	result.Image = encoded
	return result, nil
}

type regionsExtractArgs struct {
	Path      string   `json:"path"`
	OutputDir string   `json:"output_dir"`
	Prefix    string   `json:"prefix"`
	Scale     *float64 `json:"scale"`
	MaxSteps  int      `json:"max_steps"`
}

// ExtractResult lists the region images written by regions_extract.
type ExtractResult struct {
	OutputDir string                    `json:"output_dir"`
	Count     int                       `json:"count"`
	Regions   []imaging.ExtractedRegion `json:"regions"`
}

func (s *Server) handleRegionsExtract(args json.RawMessage) (interface{}, error) {
	var a regionsExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}

	scale := 1.0
	if a.Scale != nil {
		scale = *a.Scale
	}

	prefix := a.Prefix
	if prefix == "" {
		prefix = strings.TrimSuffix(filepath.Base(a.Path), filepath.Ext(a.Path))
	}

	found, err := s.findRegions(a.Path, a.MaxSteps)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	extracted, err := imaging.ExtractRegions(img, found.Regions, a.OutputDir, prefix, scale)
	if err != nil {
		return nil, err
	}

	return &ExtractResult{
		OutputDir: a.OutputDir,
		Count:     len(extracted),
		Regions:   extracted,
	}, nil
}
