package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawlerhq/trawler/pkg/engine"
)

func newTestManager(t *testing.T) (*Manager, *engine.FakeEngine) {
	t.Helper()
	fake := &engine.FakeEngine{}
	return NewManager(fake, nil), fake
}

func TestLaunchCreatesSessionWithOneTab(t *testing.T) {
	m, fake := newTestManager(t)

	tab, err := m.Launch(LaunchOptions{URL: "https://example.test", TabName: "t1"})
	require.NoError(t, err)

	assert.Equal(t, "t1", tab.Name)
	assert.Equal(t, "https://example.test", tab.CurrentURL)
	assert.True(t, m.HasSession())
	assert.Equal(t, []string{"t1"}, m.ListTabNames())
	require.Len(t, fake.LiveBrowsers(), 1)
}

func TestLaunchDefaultsTabName(t *testing.T) {
	m, _ := newTestManager(t)

	tab, err := m.Launch(LaunchOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTabName, tab.Name)
}

func TestRelaunchReplacesSession(t *testing.T) {
	m, fake := newTestManager(t)

	_, err := m.Launch(LaunchOptions{TabName: "old"})
	require.NoError(t, err)
	_, err = m.CreateTab("extra", "")
	require.NoError(t, err)

	_, err = m.Launch(LaunchOptions{TabName: "fresh"})
	require.NoError(t, err)

	// Exactly one live session and exactly one tab; the old tabs are gone.
	assert.Equal(t, []string{"fresh"}, m.ListTabNames())
	assert.Len(t, fake.LiveBrowsers(), 1)
	assert.True(t, fake.Browsers[0].Closed)
}

func TestLaunchFailureLeavesNoSession(t *testing.T) {
	fake := &engine.FakeEngine{LaunchErr: engine.ErrLaunchFailed}
	m := NewManager(fake, nil)

	_, err := m.Launch(LaunchOptions{})
	require.ErrorIs(t, err, engine.ErrLaunchFailed)
	assert.False(t, m.HasSession())
	assert.Empty(t, m.ListTabNames())
}

func TestCreateTabRequiresSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.CreateTab("t1", "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCreateTabRejectsDuplicateName(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Launch(LaunchOptions{TabName: "t1"})
	require.NoError(t, err)
	_, err = m.CreateTab("t2", "")
	require.NoError(t, err)

	_, err = m.CreateTab("t1", "")
	assert.ErrorIs(t, err, ErrDuplicateTab)

	// The collision leaves the registry unchanged: one tab named t1.
	assert.Equal(t, []string{"t1", "t2"}, m.ListTabNames())
}

func TestGetTabDefaultsToOldestRegistered(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Launch(LaunchOptions{TabName: "a"})
	require.NoError(t, err)
	_, err = m.CreateTab("b", "")
	require.NoError(t, err)

	tab, ok := m.GetTab("")
	require.True(t, ok)
	assert.Equal(t, "a", tab.Name)

	require.NoError(t, m.CloseTab("a"))

	tab, ok = m.GetTab("")
	require.True(t, ok)
	assert.Equal(t, "b", tab.Name)
}

func TestGetTabAbsenceIsNotAnError(t *testing.T) {
	m, _ := newTestManager(t)

	tab, ok := m.GetTab("missing")
	assert.False(t, ok)
	assert.Nil(t, tab)

	tab, ok = m.GetTab("")
	assert.False(t, ok)
	assert.Nil(t, tab)
}

func TestSwitchTabUnknownName(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Launch(LaunchOptions{TabName: "t1"})
	require.NoError(t, err)

	assert.ErrorIs(t, m.SwitchTab("missing"), ErrTabNotFound)
}

func TestSwitchTabFocusesPage(t *testing.T) {
	m, fake := newTestManager(t)

	_, err := m.Launch(LaunchOptions{TabName: "t1"})
	require.NoError(t, err)

	require.NoError(t, m.SwitchTab("t1"))
	assert.True(t, fake.Browsers[0].Pages[0].Foreground)
}

func TestCloseTabReleasesPage(t *testing.T) {
	m, fake := newTestManager(t)

	_, err := m.Launch(LaunchOptions{TabName: "t1"})
	require.NoError(t, err)
	_, err = m.CreateTab("t2", "")
	require.NoError(t, err)

	require.NoError(t, m.CloseTab("t1"))
	assert.Equal(t, []string{"t2"}, m.ListTabNames())
	assert.True(t, fake.Browsers[0].Pages[0].Closed)

	assert.ErrorIs(t, m.CloseTab("t1"), ErrTabNotFound)
}

func TestCloseWithoutSessionIsNoOp(t *testing.T) {
	m, _ := newTestManager(t)
	m.Close() // must not panic or error
	assert.False(t, m.HasSession())
}

func TestResolveTabMessages(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.ResolveTab("")
	require.ErrorIs(t, err, ErrNoSession)
	assert.Contains(t, err.Error(), "launch_browser")

	_, err = m.Launch(LaunchOptions{TabName: "t1"})
	require.NoError(t, err)

	_, err = m.ResolveTab("missing")
	assert.ErrorIs(t, err, ErrTabNotFound)

	tab, err := m.ResolveTab("")
	require.NoError(t, err)
	assert.Equal(t, "t1", tab.Name)
}
