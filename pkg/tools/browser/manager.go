package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/trawlerhq/trawler/pkg/engine"
	"github.com/trawlerhq/trawler/pkg/logging"
)

// Manager owns the single live browser session and its named tabs. All
// registry mutation goes through the mutex, so concurrent action callers
// cannot corrupt the name map or leak a browser process.
type Manager struct {
	mu      sync.Mutex
	engine  engine.Engine
	browser engine.Browser
	tabs    map[string]*Tab
	order   []string
	log     *logging.Logger
}

// NewManager creates a manager on top of the given engine.
func NewManager(eng engine.Engine, log *logging.Logger) *Manager {
	return &Manager{
		engine: eng,
		tabs:   make(map[string]*Tab),
		log:    log,
	}
}

// Launch starts a new browser session with one tab. Any session already live
// is closed first, so at most one browser process exists at any time. On
// failure no session is left registered.
func (m *Manager) Launch(opts LaunchOptions) (*Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		m.closeLocked()
	}

	tabName := opts.TabName
	if tabName == "" {
		tabName = DefaultTabName
	}

	browser, err := m.engine.Launch(engine.LaunchOptions{
		Headless:       opts.Headless,
		ExecutablePath: opts.ExecutablePath,
	})
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("open first tab: %w", err)
	}

	tab := &Tab{
		Name:      tabName,
		Page:      page,
		CreatedAt: time.Now(),
	}

	if opts.URL != "" {
		if err := page.Goto(opts.URL); err != nil {
			browser.Close()
			return nil, fmt.Errorf("navigate first tab: %w", err)
		}
		tab.CurrentURL = opts.URL
	}

	m.browser = browser
	m.tabs = map[string]*Tab{tabName: tab}
	m.order = []string{tabName}

	if m.log != nil {
		m.log.Infof("browser session launched (headless=%v, tab=%s)", opts.Headless, tabName)
	}
	return tab, nil
}

// Close tears down the session and clears all tab bindings. Calling it with
// no live session is a no-op, not an error.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.browser == nil {
		return
	}
	if err := m.browser.Close(); err != nil && m.log != nil {
		m.log.Warnf("closing browser session: %v", err)
	}
	m.browser = nil
	m.tabs = make(map[string]*Tab)
	m.order = nil
}

// HasSession reports whether a browser session is live.
func (m *Manager) HasSession() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.browser != nil
}

// CreateTab opens and registers a new named tab, optionally navigating it.
// Name collisions fail without side effects.
func (m *Manager) CreateTab(name, url string) (*Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		return nil, ErrNoSession
	}
	if name == "" {
		return nil, fmt.Errorf("tab name is required")
	}
	if _, exists := m.tabs[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTab, name)
	}

	page, err := m.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open tab %q: %w", name, err)
	}

	tab := &Tab{
		Name:      name,
		Page:      page,
		CreatedAt: time.Now(),
	}

	if url != "" {
		if err := page.Goto(url); err != nil {
			page.Close()
			return nil, fmt.Errorf("navigate tab %q: %w", name, err)
		}
		tab.CurrentURL = url
	}

	m.tabs[name] = tab
	m.order = append(m.order, name)
	return tab, nil
}

// GetTab resolves a tab by name. An empty name resolves to the oldest
// registered tab. Absence is reported through the boolean, never an error.
func (m *Manager) GetTab(name string) (*Tab, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" {
		if len(m.order) == 0 {
			return nil, false
		}
		name = m.order[0]
	}
	tab, ok := m.tabs[name]
	return tab, ok
}

// ResolveTab resolves an action's optional tab name to a live tab. The error
// for an unresolvable default tab tells the caller how to get one.
func (m *Manager) ResolveTab(name string) (*Tab, error) {
	tab, ok := m.GetTab(name)
	if ok {
		return tab, nil
	}
	if name != "" && m.HasSession() {
		return nil, fmt.Errorf("%w: %q", ErrTabNotFound, name)
	}
	return nil, fmt.Errorf("%w: run launch_browser first", ErrNoSession)
}

// ListTabNames returns all registered tab names in registration order.
func (m *Manager) ListTabNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// SwitchTab brings the named tab to foreground focus.
func (m *Manager) SwitchTab(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab, ok := m.tabs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTabNotFound, name)
	}
	if err := tab.Page.BringToFront(); err != nil {
		return fmt.Errorf("focus tab %q: %w", name, err)
	}
	return nil
}

// CloseTab releases the named tab's page and removes its registry entry.
func (m *Manager) CloseTab(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab, ok := m.tabs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTabNotFound, name)
	}
	if err := tab.Page.Close(); err != nil && m.log != nil {
		m.log.Warnf("closing tab %q: %v", name, err)
	}
	delete(m.tabs, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
