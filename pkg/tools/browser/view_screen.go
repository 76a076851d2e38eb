package browser

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/trawlerhq/trawler/pkg/engine"
	"github.com/trawlerhq/trawler/pkg/report"
	"github.com/trawlerhq/trawler/pkg/tools"
)

// screenshotSlot is the render sink slot screenshots are written to.
const screenshotSlot = 0

// ViewScreenTool captures the targeted tab's viewport as a JPEG and hands it
// to the render sink.
type ViewScreenTool struct {
	manager  *Manager
	renderer report.Renderer
}

// NewViewScreenTool creates a view-screen tool.
func NewViewScreenTool(manager *Manager, renderer report.Renderer) *ViewScreenTool {
	return &ViewScreenTool{manager: manager, renderer: renderer}
}

// Name returns the tool name.
func (t *ViewScreenTool) Name() string {
	return "view_screen"
}

// Description returns the tool description.
func (t *ViewScreenTool) Description() string {
	return "Capture the current viewport as a JPEG screenshot. Input flags select quality ('high') and viewport ('small')."
}

// Schema returns the tool's JSON schema.
func (t *ViewScreenTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"input": map[string]interface{}{
				"type":        "string",
				"description": "Capture flags: mention 'high' for high quality, 'small' for the small viewport",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Tab to act on; omit for the default tab",
			},
		},
		nil,
	)
}

// Execute captures the screenshot.
func (t *ViewScreenTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Input   string   `xml:"input"`
		TabName string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	tab, err := t.manager.ResolveTab(input.TabName)
	if err != nil {
		return "", nil, err
	}

	cfg := DecodeCaptureInput(input.Input)
	size := cfg.Viewport.Size()
	if err := tab.Page.SetViewport(size); err != nil {
		return "", nil, err
	}

	// Viewport-only by contract; full-page captures are never taken.
	data, err := tab.Page.Screenshot(engine.ScreenshotOptions{Quality: cfg.Quality.JPEGQuality()})
	if err != nil {
		return "", nil, err
	}

	t.renderer.SetImage(screenshotSlot, base64.StdEncoding.EncodeToString(data))

	return fmt.Sprintf("Captured screen of tab %q (%dx%d, quality %s)",
		tab.Name, size.Width, size.Height, cfg.Quality), nil, nil
}
