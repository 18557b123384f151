// Package server implements the MCP (Model Context Protocol) server for the
// PPM editor.
//
// This package provides a JSON-RPC 2.0 server that exposes the editor's
// read, validate, and transform operations to MCP-compatible clients.
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
//   - ppm_info: Dimensions, file size, and color summary of a P3 image
//   - ppm_validate: Report whether a file is a valid P3 image, and why not
//   - ppm_transform: Invert, high-contrast, or grayscale into a new file
//
// # Grid Caching
//
// Decoded grids are cached by path for ppm_info. A transform evicts its
// output path so later calls see the new contents.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// ppm_validate is the exception: an invalid image is a successful call whose
// result has "valid": false.
package server
