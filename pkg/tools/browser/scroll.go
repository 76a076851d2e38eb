package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/trawlerhq/trawler/pkg/tools"
)

// remainingScrollExpr yields the distance in pixels between the current
// scroll position and the document's maximum scroll extent.
const remainingScrollExpr = "document.documentElement.scrollHeight - window.innerHeight - window.scrollY"

// ScrollTool scrolls the targeted tab: a fixed pixel delta in a direction,
// or all the way to the bottom of the document.
type ScrollTool struct {
	manager *Manager

	// stepInterval paces scroll-to-bottom; tests shorten it.
	stepInterval time.Duration
}

// NewScrollTool creates a scroll tool.
func NewScrollTool(manager *Manager) *ScrollTool {
	return &ScrollTool{manager: manager, stepInterval: scrollStepInterval}
}

// Name returns the tool name.
func (t *ScrollTool) Name() string {
	return "browser_scroll"
}

// Description returns the tool description.
func (t *ScrollTool) Description() string {
	return "Scroll the page by a pixel amount ('up' or 'down'), or to the bottom of the document with to_bottom."
}

// Schema returns the tool's JSON schema.
func (t *ScrollTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"direction": map[string]interface{}{
				"type":        "string",
				"description": "'down' (default) or 'up'",
			},
			"pixels": map[string]interface{}{
				"type":        "integer",
				"description": "Scroll distance in pixels (default 800)",
			},
			"to_bottom": map[string]interface{}{
				"type":        "boolean",
				"description": "Scroll stepwise until the bottom of the document is reached",
			},
			"wait_after_ms": map[string]interface{}{
				"type":        "integer",
				"description": "Extra settle time in milliseconds after scrolling",
			},
			"tab_name": map[string]interface{}{
				"type":        "string",
				"description": "Tab to act on; omit for the default tab",
			},
		},
		nil,
	)
}

// Execute scrolls the page.
func (t *ScrollTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName     xml.Name `xml:"arguments"`
		Direction   string   `xml:"direction"`
		Pixels      int      `xml:"pixels"`
		ToBottom    bool     `xml:"to_bottom"`
		WaitAfterMs int      `xml:"wait_after_ms"`
		TabName     string   `xml:"tab_name"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	tab, err := t.manager.ResolveTab(input.TabName)
	if err != nil {
		return "", nil, err
	}

	var outcome string
	if input.ToBottom {
		steps, err := t.scrollToBottom(tab)
		if err != nil {
			return "", nil, err
		}
		outcome = fmt.Sprintf("Scrolled to the bottom of tab %q in %d steps", tab.Name, steps)
	} else {
		delta := input.Pixels
		if delta <= 0 {
			delta = scrollStepPixels
		}
		if input.Direction == "up" {
			delta = -delta
		}
		if _, err := tab.Page.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", delta)); err != nil {
			return "", nil, err
		}
		outcome = fmt.Sprintf("Scrolled %d pixels in tab %q", delta, tab.Name)
	}

	sleepMs(input.WaitAfterMs)
	return outcome, nil, nil
}

// scrollToBottom advances a fixed increment on a fixed cadence until the
// scroll position is within tolerance of the document's maximum extent.
func (t *ScrollTool) scrollToBottom(tab *Tab) (int, error) {
	steps := 0
	for {
		result, err := tab.Page.Evaluate(remainingScrollExpr)
		if err != nil {
			return steps, err
		}
		if toFloat(result) <= scrollBottomTolerance {
			return steps, nil
		}

		if _, err := tab.Page.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", scrollStepPixels)); err != nil {
			return steps, err
		}
		steps++
		time.Sleep(t.stepInterval)
	}
}
