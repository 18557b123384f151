package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// createTestPPMFile writes contents to name inside a temp dir and returns its path.
func createTestPPMFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// callTool runs a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
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

// resultText extracts and decodes the JSON text payload of a tool result.
func resultText(t *testing.T, resp *MCPResponse) map[string]interface{} {
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
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &decoded); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return decoded
}

const redBlue = "P3\n2 1\n255\n255 0 0 0 0 255\n"

func TestHandleToolsCall_PPMInfo(t *testing.T) {
	s := New()
	path := createTestPPMFile(t, "info.ppm", redBlue)

	got := resultText(t, callTool(t, s, "ppm_info", map[string]interface{}{"path": path}))

	if got["width"] != float64(2) || got["height"] != float64(1) {
		t.Errorf("dimensions: got %vx%v, want 2x1", got["width"], got["height"])
	}
	if got["format"] != "ppm" {
		t.Errorf("format: got %v, want ppm", got["format"])
	}

	colors, ok := got["colors"].(map[string]interface{})
	if !ok {
		t.Fatal("colors summary missing")
	}
	if colors["pixels"] != float64(2) {
		t.Errorf("pixels: got %v, want 2", colors["pixels"])
	}
	dominant, ok := colors["dominant"].([]interface{})
	if !ok || len(dominant) != 2 {
		t.Errorf("dominant: got %v, want 2 entries", colors["dominant"])
	}
}

func TestHandleToolsCall_PPMInfo_ColorCount(t *testing.T) {
	s := New()
	path := createTestPPMFile(t, "info.ppm", redBlue)

	got := resultText(t, callTool(t, s, "ppm_info", map[string]interface{}{"path": path, "colors": 1}))

	colors := got["colors"].(map[string]interface{})
	if dominant := colors["dominant"].([]interface{}); len(dominant) != 1 {
		t.Errorf("dominant: got %d entries, want 1", len(dominant))
	}
}

func TestHandleToolsCall_PPMValidate(t *testing.T) {
	s := New()

	valid := resultText(t, callTool(t, s, "ppm_validate", map[string]interface{}{
		"path": createTestPPMFile(t, "ok.ppm", redBlue),
	}))
	if valid["valid"] != true {
		t.Errorf("valid file: got %v", valid)
	}

	invalid := resultText(t, callTool(t, s, "ppm_validate", map[string]interface{}{
		"path": createTestPPMFile(t, "bad.ppm", "P3 1 1 128 0 0 0"),
	}))
	if invalid["valid"] != false {
		t.Errorf("invalid file: got %v", invalid)
	}
	reason, ok := invalid["reason"].(map[string]interface{})
	if !ok {
		t.Fatal("invalid result missing reason")
	}
	if reason["reason"] != "max value" || reason["token"] != "128" {
		t.Errorf("reason: got %v", reason)
	}
}

func TestHandleToolsCall_PPMTransform(t *testing.T) {
	s := New()
	in := createTestPPMFile(t, "in.ppm", redBlue)
	out := filepath.Join(filepath.Dir(in), "out.ppm")

	got := resultText(t, callTool(t, s, "ppm_transform", map[string]interface{}{
		"path":        in,
		"output_path": out,
		"operation":   "invert",
	}))
	if got["operation"] != "invert" {
		t.Errorf("operation: got %v, want invert", got["operation"])
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := "P3\n2 1\n255\n0 255 255 255 255 0\n"
	if string(data) != want {
		t.Errorf("output:\ngot  %q\nwant %q", data, want)
	}
}

func TestHandleToolsCall_PPMTransform_Overwrite(t *testing.T) {
	s := New()
	in := createTestPPMFile(t, "in.ppm", redBlue)
	out := filepath.Join(filepath.Dir(in), "out.ppm")
	if err := os.WriteFile(out, []byte(redBlue), 0644); err != nil {
		t.Fatalf("failed to write output: %v", err)
	}

	// Prime the cache with the old output contents.
	resultText(t, callTool(t, s, "ppm_info", map[string]interface{}{"path": out}))

	args := map[string]interface{}{
		"path":        in,
		"output_path": out,
		"operation":   "grayscale",
	}
	resp := callTool(t, s, "ppm_transform", args)
	if resp.Error == nil {
		t.Fatal("transform onto existing file without overwrite should fail")
	}
	if !strings.Contains(resp.Error.Data.(string), "overwrite") {
		t.Errorf("error data: got %v", resp.Error.Data)
	}

	args["overwrite"] = true
	resultText(t, callTool(t, s, "ppm_transform", args))

	info := resultText(t, callTool(t, s, "ppm_info", map[string]interface{}{"path": out}))
	avg := info["colors"].(map[string]interface{})["average"].(map[string]interface{})
	// Grayscale of red and blue is (85,85,85) for both pixels.
	if avg["hex"] != "#555555" {
		t.Errorf("average after overwrite: got %v, want #555555", avg["hex"])
	}
}

// averageHex runs ppm_info on path and returns the average color.
func averageHex(t *testing.T, s *Server, path string) interface{} {
	t.Helper()
	info := resultText(t, callTool(t, s, "ppm_info", map[string]interface{}{"path": path}))
	return info["colors"].(map[string]interface{})["average"].(map[string]interface{})["hex"]
}

func TestHandleToolsCall_PPMInfo_FollowsFileChanges(t *testing.T) {
	s := New()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ppm")
	out := filepath.Join(dir, "out.ppm")
	alias := dir + string(filepath.Separator) + "." + string(filepath.Separator) + "out.ppm"
	for _, p := range []string{in, out} {
		if err := os.WriteFile(p, []byte("P3\n1 1\n255\n10 10 10\n"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	if got := averageHex(t, s, alias); got != "#0a0a0a" {
		t.Fatalf("average before transform: got %v, want #0a0a0a", got)
	}

	// Written under a different spelling of the cached path.
	resultText(t, callTool(t, s, "ppm_transform", map[string]interface{}{
		"path":        in,
		"output_path": out,
		"operation":   "invert",
		"overwrite":   true,
	}))
	if got := averageHex(t, s, alias); got != "#f5f5f5" {
		t.Errorf("average after transform: got %v, want #f5f5f5", got)
	}

	// Rewritten behind the server's back, same size.
	if err := os.WriteFile(out, []byte("P3\n1 1\n255\n32 32 32\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite output: %v", err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(out, later, later); err != nil {
		t.Fatalf("failed to set times: %v", err)
	}
	if got := averageHex(t, s, alias); got != "#202020" {
		t.Errorf("average after external rewrite: got %v, want #202020", got)
	}
}

func TestHandleToolsCall_PPMTransform_BadOperation(t *testing.T) {
	s := New()
	in := createTestPPMFile(t, "in.ppm", redBlue)

	resp := callTool(t, s, "ppm_transform", map[string]interface{}{
		"path":        in,
		"output_path": filepath.Join(filepath.Dir(in), "out.ppm"),
		"operation":   "sepia",
	})
	if resp.Error == nil {
		t.Fatal("unknown operation should fail")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(t, s, "ppm_info", map[string]interface{}{"path": "/nonexistent/image.ppm"})
	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`not json`),
	})
	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestMustMarshalJSON(t *testing.T) {
	got := mustMarshalJSON(map[string]int{"a": 1})
	if !strings.Contains(got, `"a": 1`) {
		t.Errorf("mustMarshalJSON: got %s", got)
	}
	if mustMarshalJSON(make(chan int)) != "" {
		t.Error("unmarshalable value should produce empty string")
	}
}
