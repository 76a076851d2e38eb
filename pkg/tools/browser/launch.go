package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/trawlerhq/trawler/pkg/tools"
)

// LaunchTool starts the browser session. Any session already live is torn
// down first, so there is never more than one browser process.
type LaunchTool struct {
	manager         *Manager
	defaultHeadless bool
	executablePath  string
}

// NewLaunchTool creates a launch tool. defaultHeadless applies when the
// caller does not say; executablePath, when set, pins the browser binary.
func NewLaunchTool(manager *Manager, defaultHeadless bool, executablePath string) *LaunchTool {
	return &LaunchTool{
		manager:         manager,
		defaultHeadless: defaultHeadless,
		executablePath:  executablePath,
	}
}

// Name returns the tool name.
func (t *LaunchTool) Name() string {
	return "launch_browser"
}

// Description returns the tool description.
func (t *LaunchTool) Description() string {
	return "Launch the browser with one named tab, replacing any session already running. Optionally navigates the tab to a URL."
}

// Schema returns the tool's JSON schema.
func (t *LaunchTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"headless": map[string]interface{}{
				"type":        "boolean",
				"description": "Run without a visible window. Default is headed so an operator can log in to the target site.",
			},
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Address to load in the first tab",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Name for the first tab (default \"main\")",
			},
		},
		nil,
	)
}

// Execute launches the session.
func (t *LaunchTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Headless *bool    `xml:"headless"`
		URL      string   `xml:"url"`
		TabName  string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	headless := t.defaultHeadless
	if input.Headless != nil {
		headless = *input.Headless
	}

	tab, err := t.manager.Launch(LaunchOptions{
		Headless:       headless,
		ExecutablePath: t.executablePath,
		URL:            input.URL,
		TabName:        input.TabName,
	})
	if err != nil {
		return "", nil, err
	}

	if tab.CurrentURL != "" {
		return fmt.Sprintf("Browser launched (headless=%v) with tab %q at %s", headless, tab.Name, tab.CurrentURL), nil, nil
	}
	return fmt.Sprintf("Browser launched (headless=%v) with tab %q", headless, tab.Name), nil, nil
}

// CloseTool shuts down the browser session.
type CloseTool struct {
	manager *Manager
}

// NewCloseTool creates a close tool.
func NewCloseTool(manager *Manager) *CloseTool {
	return &CloseTool{manager: manager}
}

// Name returns the tool name.
func (t *CloseTool) Name() string {
	return "close_browser"
}

// Description returns the tool description.
func (t *CloseTool) Description() string {
	return "Close the browser session and all its tabs. Does nothing if no session is running."
}

// Schema returns the tool's JSON schema.
func (t *CloseTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute closes the session. Closing with no session running is a soft
// outcome, not an error.
func (t *CloseTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	if !t.manager.HasSession() {
		return "No browser instance is running", nil, nil
	}
	t.manager.Close()
	return "Browser closed", nil, nil
}
