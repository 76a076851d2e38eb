package engine

import "sync"

// FakeEngine is an in-memory Engine for tests.
type FakeEngine struct {
	mu       sync.Mutex
	Browsers []*FakeBrowser

	// LaunchErr, when set, is returned by Launch instead of a browser.
	LaunchErr error

	// PageSetup, when set, is called on every page a fake browser opens,
	// letting tests preload content and evaluate behavior.
	PageSetup func(p *FakePage)
}

// Launch records the options and returns a new fake browser.
func (e *FakeEngine) Launch(opts LaunchOptions) (Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.LaunchErr != nil {
		return nil, e.LaunchErr
	}
	b := &FakeBrowser{LaunchedWith: opts, pageSetup: e.PageSetup}
	e.Browsers = append(e.Browsers, b)
	return b, nil
}

// LiveBrowsers returns the fake browsers that have not been closed.
func (e *FakeEngine) LiveBrowsers() []*FakeBrowser {
	e.mu.Lock()
	defer e.mu.Unlock()

	var live []*FakeBrowser
	for _, b := range e.Browsers {
		if !b.Closed {
			live = append(live, b)
		}
	}
	return live
}

// FakeBrowser is an in-memory Browser.
type FakeBrowser struct {
	LaunchedWith LaunchOptions
	Pages        []*FakePage
	Closed       bool

	pageSetup func(p *FakePage)
}

func (b *FakeBrowser) NewPage() (Page, error) {
	p := &FakePage{}
	if b.pageSetup != nil {
		b.pageSetup(p)
	}
	b.Pages = append(b.Pages, p)
	return p, nil
}

func (b *FakeBrowser) Close() error {
	b.Closed = true
	for _, p := range b.Pages {
		p.Closed = true
	}
	return nil
}

// FakePage is an in-memory Page that records interactions.
type FakePage struct {
	URLValue   string
	TitleValue string
	HTML       string
	Viewport   Viewport
	Closed     bool
	Foreground bool

	Clicks      []string
	ClickDelays []float64
	Shots       []ScreenshotOptions
	Evaluated   []string

	// CountFunc answers Count queries; zero matches by default.
	CountFunc func(selector string) (int, error)

	// EvalFunc answers Evaluate calls; tests script page behavior here.
	EvalFunc func(expr string) (any, error)

	// ShotData is returned from Screenshot.
	ShotData []byte

	GotoErr error
}

func (p *FakePage) Goto(url string) error {
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.URLValue = url
	return nil
}

func (p *FakePage) Count(selector string) (int, error) {
	if p.CountFunc != nil {
		return p.CountFunc(selector)
	}
	return 0, nil
}

func (p *FakePage) Click(selector string, delayMs float64) error {
	p.Clicks = append(p.Clicks, selector)
	p.ClickDelays = append(p.ClickDelays, delayMs)
	return nil
}

func (p *FakePage) Evaluate(expr string) (any, error) {
	p.Evaluated = append(p.Evaluated, expr)
	if p.EvalFunc != nil {
		return p.EvalFunc(expr)
	}
	return nil, nil
}

func (p *FakePage) Content() (string, error) {
	return p.HTML, nil
}

func (p *FakePage) Title() (string, error) {
	return p.TitleValue, nil
}

func (p *FakePage) URL() string {
	return p.URLValue
}

func (p *FakePage) SetViewport(v Viewport) error {
	p.Viewport = v
	return nil
}

func (p *FakePage) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	p.Shots = append(p.Shots, opts)
	if p.ShotData != nil {
		return p.ShotData, nil
	}
	return []byte("jpeg"), nil
}

func (p *FakePage) WaitForReady() error {
	return nil
}

func (p *FakePage) BringToFront() error {
	p.Foreground = true
	return nil
}

func (p *FakePage) Close() error {
	p.Closed = true
	return nil
}
