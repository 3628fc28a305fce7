package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/facecrop/internal/detection"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult decodes the JSON text payload of a successful tool call.
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v", content[0]["type"])
	}

	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("tool result is not JSON: %v\n%s", err, text)
	}
}

func TestHandleToolsCall_FaceDetect(t *testing.T) {
	s := newTestServer(t,
		detection.Rect{X: 0, Y: 0, Width: 50, Height: 50},
		detection.Rect{X: 10, Y: 10, Width: 100, Height: 100},
	)
	imgPath := createTestImageFile(t, 400, 400, color.RGBA{200, 150, 120, 255})

	var got struct {
		Status     string           `json:"status"`
		Candidates []detection.Rect `json:"candidates"`
		Face       detection.Rect   `json:"face"`
		Crop       detection.Rect   `json:"crop"`
	}
	toolResult(t, callTool(t, s, "face_detect", map[string]interface{}{"path": imgPath}), &got)

	if got.Status != "detected" {
		t.Errorf("status: got %q", got.Status)
	}
	if len(got.Candidates) != 2 {
		t.Errorf("candidates: got %d, want 2", len(got.Candidates))
	}
	if got.Face != (detection.Rect{X: 10, Y: 10, Width: 100, Height: 100}) {
		t.Errorf("face: got %v", got.Face)
	}
	if got.Crop != (detection.Rect{X: 0, Y: 0, Width: 140, Height: 140}) {
		t.Errorf("crop: got %v", got.Crop)
	}
}

func TestHandleToolsCall_FaceCrop(t *testing.T) {
	s := newTestServer(t, detection.Rect{X: 100, Y: 100, Width: 100, Height: 100})
	imgPath := createTestImageFile(t, 400, 400, color.RGBA{255, 0, 0, 255})
	outPath := filepath.Join(t.TempDir(), "face.jpg")

	tests := []struct {
		name      string
		padding   interface{}
		wantWidth int
	}{
		{"profile padding", nil, 140},
		{"explicit padding", 0.5, 200},
		{"zero padding", 0.0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{
				"input_path":  imgPath,
				"output_path": outPath,
			}
			if tt.padding != nil {
				args["padding"] = tt.padding
			}

			var got struct {
				Status string         `json:"status"`
				Output string         `json:"output"`
				Crop   detection.Rect `json:"crop"`
			}
			toolResult(t, callTool(t, s, "face_crop", args), &got)

			if got.Status != "cropped" || got.Output != outPath {
				t.Errorf("status/output: got %q %q", got.Status, got.Output)
			}
			if got.Crop.Width != tt.wantWidth {
				t.Errorf("crop width: got %d, want %d", got.Crop.Width, tt.wantWidth)
			}

			// The output is re-read from disk, not served from the cache.
			var info struct {
				Width int `json:"width"`
			}
			toolResult(t, callTool(t, s, "image_info", map[string]interface{}{"path": outPath}), &info)
			if info.Width != tt.wantWidth {
				t.Errorf("saved width: got %d, want %d", info.Width, tt.wantWidth)
			}
		})
	}
}

func TestHandleToolsCall_NoFace(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 100, color.White)

	resp := callTool(t, s, "face_crop", map[string]interface{}{
		"input_path":  imgPath,
		"output_path": filepath.Join(t.TempDir(), "face.png"),
	})

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != codeToolFailed {
		t.Errorf("Error.Code: got %d, want %d", resp.Error.Code, codeToolFailed)
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "no faces detected") {
		t.Errorf("Error.Data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	var got struct {
		Path   string `json:"path"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
		Size   int64  `json:"file_size_bytes"`
	}
	toolResult(t, callTool(t, s, "image_info", map[string]interface{}{"path": imgPath}), &got)

	if got.Width != 200 || got.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", got.Width, got.Height)
	}
	if got.Format != "png" {
		t.Errorf("format: got %q", got.Format)
	}
	if got.Size <= 0 {
		t.Errorf("file_size_bytes: got %d", got.Size)
	}
}

func TestHandleToolsCall_ImageOCR(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 50, color.White)

	resp := callTool(t, s, "image_ocr", map[string]interface{}{"path": imgPath, "language": "eng"})
	if resp.Error != nil {
		// Tesseract may be missing from the build or the host.
		if resp.Error.Code != codeToolFailed {
			t.Errorf("Error.Code: got %d, want %d", resp.Error.Code, codeToolFailed)
		}
		t.Skipf("OCR unavailable: %v", resp.Error.Data)
	}

	var got struct {
		Language string `json:"language"`
	}
	toolResult(t, resp, &got)
	if got.Language != "eng" {
		t.Errorf("language: got %q", got.Language)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	s := newTestServer(t, detection.Rect{Width: 10, Height: 10})
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name     string
		tool     string
		args     interface{}
		wantCode int
	}{
		{"unknown tool", "image_rotate", map[string]interface{}{"path": missing}, codeInvalidParams},
		{"missing arguments", "face_detect", nil, codeInvalidParams},
		{"missing path", "face_detect", map[string]interface{}{}, codeInvalidParams},
		{"wrong type", "image_info", map[string]interface{}{"path": 42}, codeInvalidParams},
		{"missing output", "face_crop", map[string]interface{}{"input_path": missing}, codeInvalidParams},
		{"negative padding", "face_crop", map[string]interface{}{"input_path": missing, "output_path": "/tmp/x.png", "padding": -1}, codeInvalidParams},
		{"missing file detect", "face_detect", map[string]interface{}{"path": missing}, codeToolFailed},
		{"missing file info", "image_info", map[string]interface{}{"path": missing}, codeToolFailed},
		{"missing file crop", "face_crop", map[string]interface{}{"input_path": missing, "output_path": filepath.Join(t.TempDir(), "o.png")}, codeToolFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, tt.tool, tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("Error.Code: got %d, want %d (%v)", resp.Error.Code, tt.wantCode, resp.Error.Data)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != codeInvalidParams {
		t.Errorf("Error.Code: got %d, want %d", resp.Error.Code, codeInvalidParams)
	}
}
