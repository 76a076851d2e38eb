package tools

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// maxInvocationSize bounds a single tool call to keep a runaway orchestrator
// from exhausting memory.
const maxInvocationSize = 10 * 1024 * 1024

var toolCallRe = regexp.MustCompile(`(?s)<tool>.*?</tool>`)

// ampersandEntityRe matches ampersands already part of XML entities, so the
// fallback escape pass leaves them alone.
var ampersandEntityRe = regexp.MustCompile(`&(?:amp|lt|gt|quot|apos|#\d+|#x[0-9a-fA-F]+);`)

// HasToolCall reports whether the text contains a <tool> invocation.
func HasToolCall(text string) bool {
	return toolCallRe.MatchString(text)
}

// ParseToolCall extracts the first <tool> invocation from text. It returns
// the parsed call and the text with only that invocation removed, so later
// invocations in the same buffer survive for the next parse.
func ParseToolCall(text string) (*ToolCall, string, error) {
	if len(text) > maxInvocationSize {
		return nil, text, fmt.Errorf("tool call exceeds maximum size of %d bytes", maxInvocationSize)
	}

	loc := toolCallRe.FindStringIndex(text)
	if loc == nil {
		return nil, text, fmt.Errorf("no tool call found in text")
	}

	var call ToolCall
	if err := UnmarshalXMLWithFallback([]byte(strings.TrimSpace(text[loc[0]:loc[1]])), &call); err != nil {
		return nil, text, fmt.Errorf("failed to unmarshal tool call: %w", err)
	}
	if call.ToolName == "" {
		return nil, text, fmt.Errorf("tool_name is required in tool call")
	}

	remaining := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	return &call, remaining, nil
}

// UnmarshalXMLWithFallback unmarshals XML, retrying with bare ampersands
// escaped when the first parse fails. Orchestrators assembling calls from
// generated text routinely emit unescaped & characters.
func UnmarshalXMLWithFallback(data []byte, v interface{}) error {
	if err := xml.Unmarshal(data, v); err == nil {
		return nil
	}
	return xml.Unmarshal(escapeBareAmpersands(data), v)
}

func escapeBareAmpersands(data []byte) []byte {
	text := string(data)

	entityStarts := make(map[int]bool)
	for _, match := range ampersandEntityRe.FindAllStringIndex(text, -1) {
		entityStarts[match[0]] = true
	}

	var result strings.Builder
	result.Grow(len(text) + 16)
	for i := 0; i < len(text); i++ {
		if text[i] == '&' && !entityStarts[i] {
			result.WriteString("&amp;")
		} else {
			result.WriteByte(text[i])
		}
	}
	return []byte(result.String())
}
