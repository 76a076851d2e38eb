package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/trawlerhq/trawler/pkg/logging"
	"github.com/trawlerhq/trawler/pkg/report"
)

// Registry holds the tools available to the orchestrator.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Re-registering a name replaces the previous tool.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatcher executes tool calls and converts every outcome into a single
// reported text line. Errors never propagate past Dispatch: the orchestrator
// only ever sees outcome strings on the sink.
type Dispatcher struct {
	registry *Registry
	sink     report.Sink
	actor    string
	log      *logging.Logger
}

// NewDispatcher creates a dispatcher reporting under the given actor label.
func NewDispatcher(registry *Registry, sink report.Sink, actor string, log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		sink:     sink,
		actor:    actor,
		log:      log,
	}
}

// Dispatch runs one named operation. Exactly one line is posted to the sink:
// the tool's result on success, or an error line on any failure.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, argumentsXML []byte) {
	tool, ok := d.registry.Get(toolName)
	if !ok {
		d.post(fmt.Sprintf("Error: unknown action %q", toolName))
		return
	}

	if d.log != nil {
		d.log.Debugf("dispatching %s", toolName)
	}

	result, _, err := tool.Execute(ctx, argumentsXML)
	if err != nil {
		if d.log != nil {
			d.log.Errorf("%s failed: %v", toolName, err)
		}
		d.post(fmt.Sprintf("Error: %v", err))
		return
	}
	d.post(result)
}

// DispatchCall runs a parsed tool invocation.
func (d *Dispatcher) DispatchCall(ctx context.Context, call *ToolCall) {
	d.Dispatch(ctx, call.ToolName, call.GetArgumentsXML())
}

func (d *Dispatcher) post(text string) {
	d.sink.Post(d.actor, text)
}
