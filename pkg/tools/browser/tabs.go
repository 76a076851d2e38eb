package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/trawlerhq/trawler/pkg/tools"
)

// CreateTabTool opens a new named tab in the current session.
type CreateTabTool struct {
	manager *Manager
}

// NewCreateTabTool creates a create-tab tool.
func NewCreateTabTool(manager *Manager) *CreateTabTool {
	return &CreateTabTool{manager: manager}
}

// Name returns the tool name.
func (t *CreateTabTool) Name() string {
	return "create_tab"
}

// Description returns the tool description.
func (t *CreateTabTool) Description() string {
	return "Open a new named tab in the running browser session, optionally navigating it to a URL. Tab names must be unique."
}

// Schema returns the tool's JSON schema.
func (t *CreateTabTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Unique name for the new tab",
			},
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Address to load in the new tab",
			},
		},
		[]string{"tab_name"},
	)
}

// Execute creates the tab.
func (t *CreateTabTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		TabName string   `xml:"tab_name"`
		URL     string   `xml:"url"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.TabName == "" {
		return "", nil, fmt.Errorf("tab_name is required")
	}

	tab, err := t.manager.CreateTab(input.TabName, input.URL)
	if err != nil {
		return "", nil, err
	}

	if tab.CurrentURL != "" {
		return fmt.Sprintf("Created tab %q at %s", tab.Name, tab.CurrentURL), nil, nil
	}
	return fmt.Sprintf("Created tab %q", tab.Name), nil, nil
}

// SwitchTabTool brings a named tab to foreground focus.
type SwitchTabTool struct {
	manager *Manager
}

// NewSwitchTabTool creates a switch-tab tool.
func NewSwitchTabTool(manager *Manager) *SwitchTabTool {
	return &SwitchTabTool{manager: manager}
}

// Name returns the tool name.
func (t *SwitchTabTool) Name() string {
	return "switch_tab"
}

// Description returns the tool description.
func (t *SwitchTabTool) Description() string {
	return "Bring a named tab to the foreground."
}

// Schema returns the tool's JSON schema.
func (t *SwitchTabTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the tab to focus",
			},
		},
		[]string{"tab_name"},
	)
}

// Execute focuses the tab.
func (t *SwitchTabTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		TabName string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.TabName == "" {
		return "", nil, fmt.Errorf("tab_name is required")
	}

	if err := t.manager.SwitchTab(input.TabName); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Switched to tab %q", input.TabName), nil, nil
}

// CloseTabTool closes a named tab and removes it from the registry.
type CloseTabTool struct {
	manager *Manager
}

// NewCloseTabTool creates a close-tab tool.
func NewCloseTabTool(manager *Manager) *CloseTabTool {
	return &CloseTabTool{manager: manager}
}

// Name returns the tool name.
func (t *CloseTabTool) Name() string {
	return "close_tab"
}

// Description returns the tool description.
func (t *CloseTabTool) Description() string {
	return "Close a named tab. The session keeps running."
}

// Schema returns the tool's JSON schema.
func (t *CloseTabTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the tab to close",
			},
		},
		[]string{"tab_name"},
	)
}

// Execute closes the tab.
func (t *CloseTabTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		TabName string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.TabName == "" {
		return "", nil, fmt.Errorf("tab_name is required")
	}

	if err := t.manager.CloseTab(input.TabName); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Closed tab %q", input.TabName), nil, nil
}

// ListTabsTool reports the open tab names in registration order.
type ListTabsTool struct {
	manager *Manager
}

// NewListTabsTool creates a list-tabs tool.
func NewListTabsTool(manager *Manager) *ListTabsTool {
	return &ListTabsTool{manager: manager}
}

// Name returns the tool name.
func (t *ListTabsTool) Name() string {
	return "list_tabs"
}

// Description returns the tool description.
func (t *ListTabsTool) Description() string {
	return "List the names of all open tabs in registration order."
}

// Schema returns the tool's JSON schema.
func (t *ListTabsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute lists the tabs.
func (t *ListTabsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	names := t.manager.ListTabNames()
	if len(names) == 0 {
		return "No tabs are open", nil, nil
	}
	return fmt.Sprintf("Open tabs: %s", strings.Join(names, ", ")), nil, nil
}
