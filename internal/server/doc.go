// Package server exposes face cropping as an MCP (Model Context Protocol)
// tool server.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on stdin
//   - Output: responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - face_detect: Candidates, selected face and crop region, nothing written
//   - face_crop: Detect, pad, crop and save the dominant face
//   - image_info: Dimensions, format and file size
//   - image_ocr: Document text with word boxes
//
// # Image Caching
//
// Decoded inputs are cached by path for the lifetime of the server and shared
// with the Cropper. face_crop evicts its output path so a later call sees the
// file it just wrote.
//
// # Error Handling
//
// Errors are JSON-RPC error responses whose data field carries the Go error
// string:
//   - -32700: the line is not valid JSON
//   - -32601: unknown method
//   - -32602: unknown tool or malformed arguments
//   - -32000: the tool ran and failed (no face, unreadable image, ...)
//
// # Usage
//
//	srv := server.New(cropper, server.Options{Cache: cache, Version: version})
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
package server
