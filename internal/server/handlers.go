package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/tray-greenness-mcp/internal/imaging"
	"github.com/ironsheep/tray-greenness-mcp/internal/results"
	"github.com/ironsheep/tray-greenness-mcp/internal/tray"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "tray_load", "tray_analyze").
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
	// Image Information
	case "tray_load":
		return s.handleTrayLoad(args)
	case "tray_fit_display":
		return s.handleTrayFitDisplay(args)
	case "tray_preview":
		return s.handleTrayPreview(args)

	// Analysis
	case "tray_analyze":
		return s.handleTrayAnalyze(args)

	// Previews
	case "tray_grid_preview":
		return s.handleTrayGridPreview(args)
	case "tray_mask_preview":
		return s.handleTrayMaskPreview(args)

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

// loadTray loads a tray photograph through the cache. Only PNG and JPEG
// files are accepted.
func (s *Server) loadTray(path string) (image.Image, error) {
	switch imaging.FormatFromPath(path) {
	case "png", "jpeg":
	default:
		return nil, fmt.Errorf("unsupported image %s: must be .png, .jpg or .jpeg", path)
	}
	return s.cache.Load(path)
}

// fitDisplay fits img to the display area of a screen. Zero screen
// dimensions fall back to the configured screen size.
func (s *Server) fitDisplay(img image.Image, screenW, screenH int) (tray.Display, error) {
	if screenW <= 0 {
		screenW = s.cfg.ScreenWidth
	}
	if screenH <= 0 {
		screenH = s.cfg.ScreenHeight
	}
	areaW, areaH := tray.DisplayArea(screenW, screenH, s.cfg.ScreenReserve)
	b := img.Bounds()
	return tray.FitDisplay(b.Dx(), b.Dy(), areaW, areaH)
}

func (s *Server) options() tray.Options {
	opts := tray.OptionsFromConfig(s.cfg)
	if s.debug {
		opts.Logf = log.Printf
	}
	return opts
}

// === Image Information Handlers ===

type trayLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleTrayLoad(args json.RawMessage) (interface{}, error) {
	var a trayLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.loadTray(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type trayDisplayArgs struct {
	Path         string `json:"path"`
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
}

// FitDisplayResult describes how a tray photograph is shown on a screen.
type FitDisplayResult struct {
	NativeWidth  int `json:"native_width"`
	NativeHeight int `json:"native_height"`
	tray.Display
}

func (s *Server) handleTrayFitDisplay(args json.RawMessage) (interface{}, error) {
	var a trayDisplayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadTray(a.Path)
	if err != nil {
		return nil, err
	}
	d, err := s.fitDisplay(img, a.ScreenWidth, a.ScreenHeight)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &FitDisplayResult{NativeWidth: b.Dx(), NativeHeight: b.Dy(), Display: d}, nil
}

// DisplayPreviewResult is a resized tray photograph with the scale factor a
// client sends back with its selection.
type DisplayPreviewResult struct {
	*imaging.PreviewResult
	Scale tray.Scale `json:"scale"`
}

func (s *Server) handleTrayPreview(args json.RawMessage) (interface{}, error) {
	var a trayDisplayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadTray(a.Path)
	if err != nil {
		return nil, err
	}
	d, err := s.fitDisplay(img, a.ScreenWidth, a.ScreenHeight)
	if err != nil {
		return nil, err
	}
	resized, err := imaging.ResizeForDisplay(img, d.Width, d.Height)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.EncodePreview(resized)
	if err != nil {
		return nil, err
	}
	return &DisplayPreviewResult{PreviewResult: preview, Scale: d.Scale}, nil
}

// === Selection Handlers ===

type selectionArgs struct {
	Path         string  `json:"path"`
	XStart       float64 `json:"x_start"`
	YStart       float64 `json:"y_start"`
	XEnd         float64 `json:"x_end"`
	YEnd         float64 `json:"y_end"`
	ScaleX       float64 `json:"scale_x"`
	ScaleY       float64 `json:"scale_y"`
	ScreenWidth  int     `json:"screen_width"`
	ScreenHeight int     `json:"screen_height"`
}

func (a selectionArgs) rect() tray.Rect {
	return tray.Rect{XStart: a.XStart, YStart: a.YStart, XEnd: a.XEnd, YEnd: a.YEnd}
}

// scale returns the display-to-native factor of the selection. With no
// factor given it is derived by fitting img to the screen.
func (s *Server) scale(a selectionArgs, img image.Image) (tray.Scale, error) {
	if a.ScaleX == 0 && a.ScaleY == 0 {
		d, err := s.fitDisplay(img, a.ScreenWidth, a.ScreenHeight)
		if err != nil {
			return tray.Scale{}, err
		}
		return d.Scale, nil
	}
	sc := tray.Scale{X: a.ScaleX, Y: a.ScaleY}
	if sc.Y == 0 {
		sc.Y = sc.X
	}
	return sc, nil
}

// runSelection loads the image named in a and runs the pipeline over the
// selection.
func (s *Server) runSelection(a selectionArgs) (*tray.Analysis, error) {
	img, err := s.loadTray(a.Path)
	if err != nil {
		return nil, err
	}
	sc, err := s.scale(a, img)
	if err != nil {
		return nil, err
	}
	return tray.Run(img, a.rect(), sc, s.options())
}

type trayAnalyzeArgs struct {
	selectionArgs
	ReferenceFile string `json:"reference_file"`
	OutputFolder  string `json:"output_folder"`
	OutputName    string `json:"output_name"`
}

// AnalyzeResult is the result table of one tray selection.
type AnalyzeResult struct {
	Rows      []tray.ResultRow `json:"rows"`
	WellOrder string           `json:"well_order"`
	Crop      image.Rectangle  `json:"crop"`
	CSVPath   string           `json:"csv_path,omitempty"`
}

func (s *Server) handleTrayAnalyze(args json.RawMessage) (interface{}, error) {
	var a trayAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	names, err := results.ReadReferenceNames(a.ReferenceFile)
	if err != nil {
		return nil, err
	}
	if len(names) != tray.Wells {
		return nil, &tray.ReferenceMismatchError{Names: len(names), Wells: tray.Wells}
	}

	var csvPath string
	if a.OutputName != "" {
		if csvPath, err = results.OutputPath(a.OutputFolder, a.OutputName); err != nil {
			return nil, err
		}
	}

	analysis, err := s.runSelection(a.selectionArgs)
	if err != nil {
		return nil, err
	}
	rows, err := tray.Assemble(analysis.Scores, names)
	if err != nil {
		return nil, err
	}

	if csvPath != "" {
		if err := results.WriteCSV(csvPath, rows); err != nil {
			return nil, err
		}
	}

	return &AnalyzeResult{
		Rows:      rows,
		WellOrder: s.cfg.WellOrder,
		Crop:      analysis.Crop,
		CSVPath:   csvPath,
	}, nil
}

func (s *Server) handleTrayGridPreview(args json.RawMessage) (interface{}, error) {
	var a selectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	analysis, err := s.runSelection(a)
	if err != nil {
		return nil, err
	}
	return imaging.WellGridOverlay(analysis.Plant.Balanced, tray.Rows, tray.Cols,
		tray.WellIndexes(s.cfg.WellOrder), "#FFFFFF")
}

func (s *Server) handleTrayMaskPreview(args json.RawMessage) (interface{}, error) {
	var a selectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	analysis, err := s.runSelection(a)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePreview(analysis.Regions.Kept)
}
