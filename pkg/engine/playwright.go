package engine

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightEngine launches Chromium through the Playwright driver.
// The driver process is started lazily on the first Launch call and shared
// across launches; Stop releases it.
type PlaywrightEngine struct {
	mu sync.Mutex
	pw *playwright.Playwright
}

// NewPlaywrightEngine creates a Playwright-backed engine. The driver is not
// started until the first Launch.
func NewPlaywrightEngine() *PlaywrightEngine {
	return &PlaywrightEngine{}
}

// Launch starts a Chromium process with the given options.
func (e *PlaywrightEngine) Launch(opts LaunchOptions) (Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if opts.ExecutablePath != "" {
		if _, err := os.Stat(opts.ExecutablePath); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, opts.ExecutablePath)
		}
	}

	if e.pw == nil {
		// Quiet driver output so it does not interleave with the stdout
		// line protocol.
		runOpts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("%w: install driver: %v", ErrEngineNotFound, err)
		}
		pw, err := playwright.Run(runOpts)
		if err != nil {
			return nil, fmt.Errorf("%w: start driver: %v", ErrEngineNotFound, err)
		}
		e.pw = pw
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	browser, err := e.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	viewport := opts.Viewport
	if viewport.Width == 0 || viewport.Height == 0 {
		viewport = Viewport{Width: 1280, Height: 720}
	}
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewport.Width,
			Height: viewport.Height,
		},
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("%w: new context: %v", ErrLaunchFailed, err)
	}

	return &playwrightBrowser{browser: browser, context: context}, nil
}

// Stop shuts down the shared Playwright driver. Call after all browsers are
// closed, typically on process exit.
func (e *PlaywrightEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pw == nil {
		return nil
	}
	err := e.pw.Stop()
	e.pw = nil
	if err != nil {
		return fmt.Errorf("stop playwright driver: %w", err)
	}
	return nil
}

type playwrightBrowser struct {
	browser playwright.Browser
	context playwright.BrowserContext
}

func (b *playwrightBrowser) NewPage() (Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (b *playwrightBrowser) Close() error {
	_ = b.context.Close() // pages go down with the context
	if err := b.browser.Close(); err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url string) error {
	if _, err := p.page.Goto(url, playwright.PageGotoOptions{}); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) Count(selector string) (int, error) {
	elements, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return 0, fmt.Errorf("query %q: %w", selector, err)
	}
	return len(elements), nil
}

func (p *playwrightPage) Click(selector string, delayMs float64) error {
	opts := playwright.PageClickOptions{}
	if delayMs > 0 {
		opts.Delay = playwright.Float(delayMs)
	}
	if err := p.page.Click(selector, opts); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

func (p *playwrightPage) Evaluate(expr string) (any, error) {
	result, err := p.page.Evaluate(expr)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return result, nil
}

func (p *playwrightPage) Content() (string, error) {
	content, err := p.page.Content()
	if err != nil {
		return "", fmt.Errorf("page content: %w", err)
	}
	return content, nil
}

func (p *playwrightPage) Title() (string, error) {
	title, err := p.page.Title()
	if err != nil {
		return "", fmt.Errorf("page title: %w", err)
	}
	return title, nil
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) SetViewport(v Viewport) error {
	if err := p.page.SetViewportSize(v.Width, v.Height); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}

func (p *playwrightPage) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	data, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Type:     playwright.ScreenshotTypeJpeg,
		Quality:  playwright.Int(opts.Quality),
		FullPage: playwright.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

func (p *playwrightPage) WaitForReady() error {
	err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	})
	if err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}
	return nil
}

func (p *playwrightPage) BringToFront() error {
	if err := p.page.BringToFront(); err != nil {
		return fmt.Errorf("bring to front: %w", err)
	}
	return nil
}

func (p *playwrightPage) Close() error {
	if err := p.page.Close(); err != nil {
		return fmt.Errorf("close page: %w", err)
	}
	return nil
}
