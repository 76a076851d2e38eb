package browser

import (
	"github.com/trawlerhq/trawler/pkg/report"
	"github.com/trawlerhq/trawler/pkg/tools"
)

// RegistryOptions configures the browser tool set.
type RegistryOptions struct {
	// DefaultHeadless applies when launch_browser omits the flag.
	DefaultHeadless bool

	// ExecutablePath optionally pins a specific browser binary.
	ExecutablePath string

	// SnapshotMaxChars caps snapshot output; zero means the default cap.
	SnapshotMaxChars int
}

// RegisterTools builds the full browser action surface against the given
// manager and render sink, and registers it on the tool registry.
func RegisterTools(registry *tools.Registry, manager *Manager, renderer report.Renderer, opts RegistryOptions) {
	for _, tool := range []tools.Tool{
		NewLaunchTool(manager, opts.DefaultHeadless, opts.ExecutablePath),
		NewCloseTool(manager),
		NewCreateTabTool(manager),
		NewSwitchTabTool(manager),
		NewCloseTabTool(manager),
		NewListTabsTool(manager),
		NewClickTool(manager),
		NewScrollTool(manager),
		NewWaitTool(),
		NewNavigateTool(manager),
		NewWaitForNavigationTool(manager),
		NewViewScreenTool(manager, renderer),
		NewSnapshotTool(manager, renderer, opts.SnapshotMaxChars),
	} {
		registry.Register(tool)
	}
}
