package browser

import (
	"time"

	"github.com/trawlerhq/trawler/pkg/engine"
)

// Tab is a named page within the current browser session.
type Tab struct {
	// Name uniquely identifies the tab within the session.
	Name string

	// Page is the underlying engine page handle.
	Page engine.Page

	// CurrentURL is the last address the registry navigated this tab to.
	CurrentURL string

	// CreatedAt is when the tab was registered.
	CreatedAt time.Time
}

// LaunchOptions configures a new browser session and its first tab.
type LaunchOptions struct {
	// Headless controls browser window visibility.
	Headless bool

	// ExecutablePath optionally pins a specific browser binary.
	ExecutablePath string

	// URL, when set, is loaded into the first tab after launch.
	URL string

	// TabName names the first tab; empty means DefaultTabName.
	TabName string
}

// Defaults for the action surface.
const (
	// DefaultTabName is used when launch omits a tab name.
	DefaultTabName = "main"

	// DefaultSnapshotMaxChars caps sanitized snapshot output.
	DefaultSnapshotMaxChars = 100_000

	// DefaultClickDelayMs is the mouse-down hold applied to clicks.
	DefaultClickDelayMs = 50

	// DefaultWaitMs is the fixed wait when the caller gives no duration.
	DefaultWaitMs = 3000

	// DefaultNavigationSettle absorbs client-side rendering races after
	// the page reports a fully-loaded state.
	DefaultNavigationSettle = 3 * time.Second
)

// Scroll-to-bottom pacing.
const (
	scrollStepPixels      = 800
	scrollStepInterval    = 100 * time.Millisecond
	scrollBottomTolerance = 10
)
