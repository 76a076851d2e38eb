package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawlerhq/trawler/pkg/engine"
	"github.com/trawlerhq/trawler/pkg/report"
	"github.com/trawlerhq/trawler/pkg/tools"
)

// fakeRenderer records render sink writes.
type fakeRenderer struct {
	mu        sync.Mutex
	markup    string
	truncated bool
	images    map[int]string
}

func (r *fakeRenderer) SetMarkup(markup string, truncated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markup = markup
	r.truncated = truncated
}

func (r *fakeRenderer) SetImage(slot int, b64 string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.images == nil {
		r.images = make(map[int]string)
	}
	r.images[slot] = b64
}

type actionHarness struct {
	fake       *engine.FakeEngine
	manager    *Manager
	renderer   *fakeRenderer
	sink       *report.MemorySink
	dispatcher *tools.Dispatcher
}

func newActionHarness(t *testing.T, pageSetup func(p *engine.FakePage)) *actionHarness {
	t.Helper()

	fake := &engine.FakeEngine{PageSetup: pageSetup}
	manager := NewManager(fake, nil)
	renderer := &fakeRenderer{}
	sink := &report.MemorySink{}

	registry := tools.NewRegistry()
	RegisterTools(registry, manager, renderer, RegistryOptions{})

	return &actionHarness{
		fake:       fake,
		manager:    manager,
		renderer:   renderer,
		sink:       sink,
		dispatcher: tools.NewDispatcher(registry, sink, "crawler", nil),
	}
}

func (h *actionHarness) dispatch(t *testing.T, action, args string) string {
	t.Helper()
	h.dispatcher.Dispatch(context.Background(), action, []byte("<arguments>"+args+"</arguments>"))
	return h.sink.Last().Text
}

func TestActionSurfaceTabLifecycle(t *testing.T) {
	h := newActionHarness(t, nil)

	out := h.dispatch(t, "launch_browser", "<url>https://example.test</url><tab_name>t1</tab_name>")
	assert.Contains(t, out, `tab "t1"`)
	assert.Contains(t, out, "https://example.test")

	out = h.dispatch(t, "create_tab", "<tab_name>t2</tab_name>")
	assert.Contains(t, out, `Created tab "t2"`)

	out = h.dispatch(t, "list_tabs", "")
	assert.Equal(t, "Open tabs: t1, t2", out)

	out = h.dispatch(t, "switch_tab", "<tab_name>missing</tab_name>")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "tab not found")

	out = h.dispatch(t, "close_tab", "<tab_name>t1</tab_name>")
	assert.Contains(t, out, `Closed tab "t1"`)

	out = h.dispatch(t, "list_tabs", "")
	assert.Equal(t, "Open tabs: t2", out)

	// Every outcome was reported under the crawler's actor label.
	for _, entry := range h.sink.Entries() {
		assert.Equal(t, "crawler", entry.Actor)
	}
}

func TestDuplicateTabReportedAsError(t *testing.T) {
	h := newActionHarness(t, nil)

	h.dispatch(t, "launch_browser", "<tab_name>t1</tab_name>")
	out := h.dispatch(t, "create_tab", "<tab_name>t1</tab_name>")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "already in use")
}

func TestCloseBrowserWithoutSession(t *testing.T) {
	h := newActionHarness(t, nil)

	out := h.dispatch(t, "close_browser", "")
	assert.Equal(t, "No browser instance is running", out)
}

func TestActionsWithoutSessionInstructLaunch(t *testing.T) {
	h := newActionHarness(t, nil)

	for _, action := range []string{"browser_click", "browser_navigate", "browser_snapshot_dom", "view_screen"} {
		out := h.dispatch(t, action, "<selector>a</selector><url>https://x.test</url>")
		assert.Contains(t, out, "Error:", "action %s", action)
		assert.Contains(t, out, "launch_browser", "action %s", action)
	}
}

func TestClickMissingSelectorIsSoftOutcome(t *testing.T) {
	h := newActionHarness(t, nil) // CountFunc defaults to zero matches

	h.dispatch(t, "launch_browser", "")
	out := h.dispatch(t, "browser_click", "<selector>button.load-more</selector>")
	assert.Equal(t, `No element matching "button.load-more" was found`, out)
	assert.Empty(t, h.fake.Browsers[0].Pages[0].Clicks)
}

func TestClickAppliesInputDelay(t *testing.T) {
	h := newActionHarness(t, func(p *engine.FakePage) {
		p.CountFunc = func(string) (int, error) { return 1, nil }
	})

	h.dispatch(t, "launch_browser", "")
	out := h.dispatch(t, "browser_click", "<selector>article a</selector>")
	assert.Contains(t, out, `Clicked "article a"`)

	page := h.fake.Browsers[0].Pages[0]
	require.Equal(t, []string{"article a"}, page.Clicks)
	assert.Equal(t, []float64{DefaultClickDelayMs}, page.ClickDelays)
}

func TestScrollFixedDelta(t *testing.T) {
	h := newActionHarness(t, nil)

	h.dispatch(t, "launch_browser", "")

	out := h.dispatch(t, "browser_scroll", "<pixels>400</pixels>")
	assert.Contains(t, out, "Scrolled 400 pixels")

	out = h.dispatch(t, "browser_scroll", "<direction>up</direction><pixels>400</pixels>")
	assert.Contains(t, out, "Scrolled -400 pixels")

	page := h.fake.Browsers[0].Pages[0]
	assert.Contains(t, page.Evaluated, "window.scrollBy(0, 400)")
	assert.Contains(t, page.Evaluated, "window.scrollBy(0, -400)")
}

func TestScrollToBottomTerminates(t *testing.T) {
	// Model a 2000px document behind a 600px viewport: 1400px of travel.
	const maxScroll = 1400.0
	pos := 0.0

	h := newActionHarness(t, func(p *engine.FakePage) {
		p.EvalFunc = func(expr string) (any, error) {
			if strings.HasPrefix(expr, "window.scrollBy") {
				pos += scrollStepPixels
				if pos > maxScroll {
					pos = maxScroll
				}
				return nil, nil
			}
			return maxScroll - pos, nil
		}
	})

	_, err := h.manager.Launch(LaunchOptions{})
	require.NoError(t, err)

	tool := NewScrollTool(h.manager)
	tool.stepInterval = time.Millisecond

	out, _, err := tool.Execute(context.Background(),
		[]byte("<arguments><to_bottom>true</to_bottom></arguments>"))
	require.NoError(t, err)
	assert.Contains(t, out, "Scrolled to the bottom")
	assert.Contains(t, out, "2 steps")

	// Final position is within tolerance of the maximum scroll extent.
	assert.LessOrEqual(t, maxScroll-pos, float64(scrollBottomTolerance))
}

func TestWaitDefaultsAndReports(t *testing.T) {
	h := newActionHarness(t, nil)

	out := h.dispatch(t, "browser_wait", "<milliseconds>1</milliseconds>")
	assert.Equal(t, "Waited 1 ms", out)
}

func TestNavigateReportsTitle(t *testing.T) {
	h := newActionHarness(t, func(p *engine.FakePage) {
		p.TitleValue = "Search / X"
	})

	h.dispatch(t, "launch_browser", "<tab_name>t1</tab_name>")
	out := h.dispatch(t, "browser_navigate", "<url>https://x.test/search</url>")
	assert.Contains(t, out, "https://x.test/search")
	assert.Contains(t, out, `"Search / X"`)

	tab, ok := h.manager.GetTab("t1")
	require.True(t, ok)
	assert.Equal(t, "https://x.test/search", tab.CurrentURL)
}

func TestWaitForNavigationSettles(t *testing.T) {
	h := newActionHarness(t, nil)
	_, err := h.manager.Launch(LaunchOptions{TabName: "t1"})
	require.NoError(t, err)

	tool := NewWaitForNavigationTool(h.manager)
	tool.settle = time.Millisecond

	// The strategy parameter is accepted but does not change behavior.
	for _, args := range []string{"", "<strategy>networkidle</strategy>"} {
		out, _, err := tool.Execute(context.Background(), []byte("<arguments>"+args+"</arguments>"))
		require.NoError(t, err)
		assert.Contains(t, out, "finished loading")
	}
}

func TestViewScreenCapturesViewportJPEG(t *testing.T) {
	h := newActionHarness(t, func(p *engine.FakePage) {
		p.ShotData = []byte{0xff, 0xd8, 0xff}
	})

	h.dispatch(t, "launch_browser", "")
	out := h.dispatch(t, "view_screen", "<input>high quality small</input>")
	assert.Contains(t, out, "800x600")
	assert.Contains(t, out, "quality high")

	page := h.fake.Browsers[0].Pages[0]
	assert.Equal(t, engine.Viewport{Width: 800, Height: 600}, page.Viewport)
	require.Len(t, page.Shots, 1)
	assert.Equal(t, 80, page.Shots[0].Quality)

	assert.Equal(t, "/9j/", h.renderer.images[0][:4]) // base64 JPEG magic
}

func TestSnapshotToolFeedsRenderer(t *testing.T) {
	h := newActionHarness(t, func(p *engine.FakePage) {
		p.HTML = feedPage
	})

	h.dispatch(t, "launch_browser", "")
	out := h.dispatch(t, "browser_snapshot_dom", "<search_term>busan_food</search_term>")
	assert.Contains(t, out, "2 fragments")
	assert.Contains(t, h.renderer.markup, "busan_food")
	assert.False(t, h.renderer.truncated)
}

func TestSnapshotToolNoMatchesSoftOutcome(t *testing.T) {
	h := newActionHarness(t, func(p *engine.FakePage) {
		p.HTML = feedPage
	})

	h.dispatch(t, "launch_browser", "")
	out := h.dispatch(t, "browser_snapshot_dom", "<search_term>zzz_nope</search_term>")
	assert.Equal(t, fmt.Sprintf("No elements matched %q in tab %q", "zzz_nope", "main"), out)
	assert.Empty(t, h.renderer.markup)
}

func TestRegisteredActionSurface(t *testing.T) {
	registry := tools.NewRegistry()
	RegisterTools(registry, NewManager(&engine.FakeEngine{}, nil), &fakeRenderer{}, RegistryOptions{})

	assert.Equal(t, []string{
		"browser_click",
		"browser_navigate",
		"browser_scroll",
		"browser_snapshot_dom",
		"browser_wait",
		"browser_wait_for_navigation",
		"close_browser",
		"close_tab",
		"create_tab",
		"launch_browser",
		"list_tabs",
		"switch_tab",
		"view_screen",
	}, registry.Names())
}
