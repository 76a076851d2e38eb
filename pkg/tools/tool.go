// Package tools defines the action surface the orchestrator drives: the Tool
// interface, the XML invocation format, and the dispatcher that turns every
// tool outcome, success or failure, into a single reported text line.
package tools

import (
	"context"
	"encoding/xml"
)

// Tool is one named operation the orchestrator can invoke.
//
// Invocation format:
//
//	<tool>
//	<tool_name>browser_click</tool_name>
//	<arguments>
//	  <selector>article a</selector>
//	</arguments>
//	</tool>
type Tool interface {
	// Name returns the unique operation name (e.g. "browser_click").
	Name() string

	// Description returns a human-readable description of the operation.
	Description() string

	// Schema returns the JSON schema of the operation's parameters.
	Schema() map[string]interface{}

	// Execute runs the operation with XML-encoded arguments and returns a
	// one-line outcome. Metadata is optional and may be nil.
	Execute(ctx context.Context, argumentsXML []byte) (string, map[string]interface{}, error)
}

// ToolCall is a parsed tool invocation.
type ToolCall struct {
	XMLName   xml.Name       `xml:"tool"`
	ToolName  string         `xml:"tool_name"`
	Arguments ArgumentsBlock `xml:"arguments"`
}

// ArgumentsBlock holds the raw XML inside the arguments element.
type ArgumentsBlock struct {
	InnerXML []byte `xml:",innerxml"`
}

// GetArgumentsXML returns the arguments rewrapped in <arguments> tags, ready
// for unmarshaling into a tool's parameter struct.
func (tc *ToolCall) GetArgumentsXML() []byte {
	const prefix = "<arguments>"
	const suffix = "</arguments>"

	result := make([]byte, 0, len(prefix)+len(tc.Arguments.InnerXML)+len(suffix))
	result = append(result, prefix...)
	result = append(result, tc.Arguments.InnerXML...)
	result = append(result, suffix...)
	return result
}

// BaseToolSchema builds the common JSON schema shape for a tool from its
// properties and required field names.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
