// Package server implements the MCP (Model Context Protocol) server for
// opaque-region detection.
//
// This package provides a JSON-RPC 2.0 server that exposes region detection
// through the MCP protocol, so MCP clients can ask for the bounding boxes of
// sprites or mask blobs in an image.
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
//
// Region Detection:
//   - regions_find: Bounding rectangles of opaque regions
//   - regions_find_batch: regions_find over several images concurrently
//   - regions_overlay: Render detected regions as an overlay image
//   - regions_extract: Save each detected region as its own PNG
//
// # Image Caching
//
// The server keeps an in-memory cache of decoded images keyed by path for
// the lifetime of the process, so a regions_find followed by a
// regions_overlay on the same file decodes it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.NewWithConfig(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
