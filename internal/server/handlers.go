package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/facecrop/internal/facecrop"
	"github.com/ironsheep/facecrop/internal/imaging"
	"github.com/ironsheep/facecrop/internal/ocr"
)

// errInvalidArgs marks tool arguments that are malformed or incomplete.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "face_crop").
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
// Bad arguments return -32602; tool execution errors return -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "error", err)
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "face_detect":
		return s.handleFaceDetect(ctx, args)
	case "face_crop":
		return s.handleFaceCrop(ctx, args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_ocr":
		return s.handleImageOCR(args)
	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing arguments", errInvalidArgs)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

func requirePath(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", errInvalidArgs, field)
	}
	return nil
}

// === Face Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleFaceDetect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return s.cropper.Detect(ctx, a.Path)
}

type faceCropArgs struct {
	InputPath  string   `json:"input_path"`
	OutputPath string   `json:"output_path"`
	Padding    *float64 `json:"padding,omitempty"`
}

func (s *Server) handleFaceCrop(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a faceCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("input_path", a.InputPath); err != nil {
		return nil, err
	}
	if err := requirePath("output_path", a.OutputPath); err != nil {
		return nil, err
	}

	var opts []facecrop.ProcessOption
	if a.Padding != nil {
		if *a.Padding < 0 {
			return nil, fmt.Errorf("%w: padding must not be negative", errInvalidArgs)
		}
		opts = append(opts, facecrop.WithPadding(*a.Padding))
	}

	res, err := s.cropper.Process(ctx, a.InputPath, a.OutputPath, opts...)
	// A rewritten output must not be served stale from the cache.
	s.cache.Evict(a.OutputPath)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// === Image Handlers ===

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageOCRArgs struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

func (s *Server) handleImageOCR(args json.RawMessage) (interface{}, error) {
	var a imageOCRArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	opts := s.ocr
	if a.Language != "" {
		opts.Language = a.Language
	}
	return ocr.ExtractText(a.Path, opts)
}
