package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/trawlerhq/trawler/pkg/tools"
)

// ClickTool clicks an element by structural selector in the targeted tab.
type ClickTool struct {
	manager *Manager
}

// NewClickTool creates a click tool.
func NewClickTool(manager *Manager) *ClickTool {
	return &ClickTool{manager: manager}
}

// Name returns the tool name.
func (t *ClickTool) Name() string {
	return "browser_click"
}

// Description returns the tool description.
func (t *ClickTool) Description() string {
	return "Click the first element matching a CSS selector. A selector that matches nothing is reported, not an error."
}

// Schema returns the tool's JSON schema.
func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the element to click (e.g. 'article a', '[data-testid=\"like\"]')",
			},
			"wait_after_ms": map[string]interface{}{
				"type":        "integer",
				"description": "Extra settle time in milliseconds after the click",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Tab to act on; omit for the default tab",
			},
		},
		[]string{"selector"},
	)
}

// Execute clicks the element.
func (t *ClickTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName     xml.Name `xml:"arguments"`
		Selector    string   `xml:"selector"`
		WaitAfterMs int      `xml:"wait_after_ms"`
		TabName     string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Selector == "" {
		return "", nil, fmt.Errorf("selector is required")
	}

	tab, err := t.manager.ResolveTab(input.TabName)
	if err != nil {
		return "", nil, err
	}

	count, err := tab.Page.Count(input.Selector)
	if err != nil {
		return "", nil, err
	}
	if count == 0 {
		// Soft outcome: the page simply has no such element right now.
		return fmt.Sprintf("No element matching %q was found", input.Selector), nil, nil
	}

	if err := tab.Page.Click(input.Selector, DefaultClickDelayMs); err != nil {
		return "", nil, err
	}
	sleepMs(input.WaitAfterMs)

	return fmt.Sprintf("Clicked %q in tab %q", input.Selector, tab.Name), nil, nil
}
