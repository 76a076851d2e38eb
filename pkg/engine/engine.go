// Package engine wraps a launched browser process behind a small interface
// so the tab registry and action tools never touch the automation driver
// directly. The production implementation runs on Playwright; tests use the
// fake in fake.go.
package engine

import "errors"

var (
	// ErrEngineNotFound indicates no usable browser executable or driver
	// could be located on this machine.
	ErrEngineNotFound = errors.New("no usable browser engine found")

	// ErrLaunchFailed indicates the engine was found but refused to start.
	ErrLaunchFailed = errors.New("browser engine failed to launch")
)

// LaunchOptions configures a new browser process.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible window.
	// Crawling runs headed by default so a human operator can log in to the
	// target site out-of-band.
	Headless bool

	// ExecutablePath optionally points at a specific browser binary.
	// Empty means the engine's bundled browser.
	ExecutablePath string

	// Viewport sets the initial page viewport.
	Viewport Viewport
}

// Viewport is a page viewport size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// ScreenshotOptions configures a capture. Captures are always constrained to
// the current viewport; there is no full-page mode.
type ScreenshotOptions struct {
	// Quality is the JPEG quality, 0-100.
	Quality int
}

// Engine starts browser processes.
type Engine interface {
	// Launch starts a new browser process. Returns ErrEngineNotFound or
	// ErrLaunchFailed (possibly wrapped) on failure.
	Launch(opts LaunchOptions) (Browser, error)
}

// Browser is one live browser process.
type Browser interface {
	// NewPage opens a fresh page in the browser.
	NewPage() (Page, error)

	// Close tears down the browser process and every page it owns.
	Close() error
}

// Page is a single browser page.
type Page interface {
	// Goto navigates the page and waits for the navigation to commit.
	Goto(url string) error

	// Count reports how many elements match the selector.
	Count(selector string) (int, error)

	// Click clicks the first element matching the selector, holding the
	// mouse button down for delayMs milliseconds.
	Click(selector string, delayMs float64) error

	// Evaluate runs a JavaScript expression in the page and returns its
	// result. Numeric results come back as float64.
	Evaluate(expr string) (any, error)

	// Content returns the page's full serialized HTML.
	Content() (string, error)

	// Title returns the current document title.
	Title() (string, error)

	// URL returns the page's current address.
	URL() string

	// SetViewport resizes the page viewport.
	SetViewport(v Viewport) error

	// Screenshot captures the current viewport as JPEG bytes.
	Screenshot(opts ScreenshotOptions) ([]byte, error)

	// WaitForReady blocks until the page reports a fully-loaded state.
	WaitForReady() error

	// BringToFront gives the page foreground focus.
	BringToFront() error

	// Close closes the page.
	Close() error
}
