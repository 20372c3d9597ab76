// Package server implements the MCP (Model Context Protocol) server for the
// tray greenness pipeline.
//
// A client shows a tray photograph, lets the user drag a rectangle over the
// 4x6 grid of wells, and sends that selection here in display coordinates
// together with the display-to-native scale factor. The server runs the
// pipeline in package tray and returns one greenness score per well.
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
// Image Information:
//   - tray_load: Native dimensions, format and file size
//   - tray_fit_display: Display size and scale factor for a screen
//   - tray_preview: Resized PNG for the selecting client
//
// Analysis:
//   - tray_analyze: Per-well scores paired with reference names, optional CSV
//
// Previews:
//   - tray_grid_preview: White-balanced selection with the well grid drawn on it
//   - tray_mask_preview: Plant mask of the selection
//
// When a selection carries no scale factor, the image is fitted to the screen
// size from the arguments or the configuration and that fit's factor is used.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the process, so a
// preview followed by an analysis decodes the file once.
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
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
