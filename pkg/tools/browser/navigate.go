package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/trawlerhq/trawler/pkg/tools"
)

// NavigateTool loads an address in the targeted tab.
type NavigateTool struct {
	manager *Manager
}

// NewNavigateTool creates a navigate tool.
func NewNavigateTool(manager *Manager) *NavigateTool {
	return &NavigateTool{manager: manager}
}

// Name returns the tool name.
func (t *NavigateTool) Name() string {
	return "browser_navigate"
}

// Description returns the tool description.
func (t *NavigateTool) Description() string {
	return "Navigate a tab to a URL and report the resulting page title."
}

// Schema returns the tool's JSON schema.
func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Address to load",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Tab to act on; omit for the default tab",
			},
		},
		[]string{"url"},
	)
}

// Execute navigates the tab.
func (t *NavigateTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		URL     string   `xml:"url"`
		TabName string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.URL == "" {
		return "", nil, fmt.Errorf("url is required")
	}

	tab, err := t.manager.ResolveTab(input.TabName)
	if err != nil {
		return "", nil, err
	}

	if err := tab.Page.Goto(input.URL); err != nil {
		return "", nil, err
	}
	tab.CurrentURL = input.URL

	title, err := tab.Page.Title()
	if err != nil {
		title = ""
	}
	return fmt.Sprintf("Navigated tab %q to %s (title: %q)", tab.Name, input.URL, title), nil, nil
}

// WaitForNavigationTool blocks until the targeted tab's page reaches a
// fully-loaded state, then settles a fixed additional delay to absorb
// client-side rendering races.
type WaitForNavigationTool struct {
	manager *Manager

	// settle is the post-load delay; tests shorten it.
	settle time.Duration
}

// NewWaitForNavigationTool creates a wait-for-navigation tool.
func NewWaitForNavigationTool(manager *Manager) *WaitForNavigationTool {
	return &WaitForNavigationTool{manager: manager, settle: DefaultNavigationSettle}
}

// Name returns the tool name.
func (t *WaitForNavigationTool) Name() string {
	return "browser_wait_for_navigation"
}

// Description returns the tool description.
func (t *WaitForNavigationTool) Description() string {
	return "Wait until the page is fully loaded, plus a fixed settle delay for client-side rendering."
}

// Schema returns the tool's JSON schema.
func (t *WaitForNavigationTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"strategy": map[string]interface{}{
				"type":        "string",
				"description": "Load strategy hint; currently every strategy waits for the full load state",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Tab to act on; omit for the default tab",
			},
		},
		nil,
	)
}

// Execute waits for the page.
func (t *WaitForNavigationTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Strategy string   `xml:"strategy"`
		TabName  string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	tab, err := t.manager.ResolveTab(input.TabName)
	if err != nil {
		return "", nil, err
	}

	if err := tab.Page.WaitForReady(); err != nil {
		return "", nil, err
	}
	time.Sleep(t.settle)

	return fmt.Sprintf("Tab %q finished loading", tab.Name), nil, nil
}

// WaitTool blocks for a fixed caller-specified duration.
type WaitTool struct{}

// NewWaitTool creates a fixed-wait tool.
func NewWaitTool() *WaitTool {
	return &WaitTool{}
}

// Name returns the tool name.
func (t *WaitTool) Name() string {
	return "browser_wait"
}

// Description returns the tool description.
func (t *WaitTool) Description() string {
	return "Wait a fixed number of milliseconds (default 3000)."
}

// Schema returns the tool's JSON schema.
func (t *WaitTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"milliseconds": map[string]interface{}{
				"type":        "integer",
				"description": "Duration to wait (default 3000)",
			},
		},
		nil,
	)
}

// Execute waits.
func (t *WaitTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName      xml.Name `xml:"arguments"`
		Milliseconds int      `xml:"milliseconds"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	ms := input.Milliseconds
	if ms <= 0 {
		ms = DefaultWaitMs
	}
	sleepMs(ms)

	return fmt.Sprintf("Waited %d ms", ms), nil, nil
}
