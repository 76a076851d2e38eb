package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/trawlerhq/trawler/pkg/report"
	"github.com/trawlerhq/trawler/pkg/tools"
)

// SnapshotTool captures the targeted tab's markup, runs it through the
// extraction pipeline, and hands the sanitized result to the render sink.
type SnapshotTool struct {
	manager  *Manager
	renderer report.Renderer
	maxChars int
}

// NewSnapshotTool creates a snapshot tool. maxChars caps the sanitized
// output; zero means the default cap.
func NewSnapshotTool(manager *Manager, renderer report.Renderer, maxChars int) *SnapshotTool {
	if maxChars <= 0 {
		maxChars = DefaultSnapshotMaxChars
	}
	return &SnapshotTool{manager: manager, renderer: renderer, maxChars: maxChars}
}

// Name returns the tool name.
func (t *SnapshotTool) Name() string {
	return "browser_snapshot_dom"
}

// Description returns the tool description.
func (t *SnapshotTool) Description() string {
	return "Extract a sanitized, size-bounded snapshot of the page's markup. With a search term, only elements containing the term (or '#term') are kept."
}

// Schema returns the tool's JSON schema.
func (t *SnapshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"search_term": map[string]interface{}{
				"type":        "string",
				"description": "Keep only elements whose text contains this term or '#'+term, case-insensitive",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Tab to act on; omit for the default tab",
			},
		},
		nil,
	)
}

// Execute captures and sanitizes the page markup.
func (t *SnapshotTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName    xml.Name `xml:"arguments"`
		SearchTerm string   `xml:"search_term"`
		TabName    string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	tab, err := t.manager.ResolveTab(input.TabName)
	if err != nil {
		return "", nil, err
	}

	rawHTML, err := tab.Page.Content()
	if err != nil {
		return "", nil, err
	}

	snapshot, err := BuildSnapshot(rawHTML, SnapshotOptions{
		SearchTerm: input.SearchTerm,
		MaxChars:   t.maxChars,
	})
	if err != nil {
		return "", nil, err
	}

	if input.SearchTerm != "" && snapshot.Matches == 0 {
		// Soft outcome: the lookup simply found nothing.
		return fmt.Sprintf("No elements matched %q in tab %q", input.SearchTerm, tab.Name), nil, nil
	}

	t.renderer.SetMarkup(snapshot.Markup, snapshot.Truncated)

	outcome := fmt.Sprintf("Captured DOM snapshot of tab %q (%d fragments, %d chars)",
		tab.Name, snapshot.Matches, len(snapshot.Markup))
	if snapshot.Truncated {
		outcome += ", truncated to the size cap"
	}
	return outcome, nil, nil
}
