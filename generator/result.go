package generator

import (
	"regexp"
	"strings"

	"archmap/diagram"
)

// DiagramResult is the final artifact of one generation run. It is produced
// once and returned to the caller; no partial result exists on failure.
type DiagramResult struct {
	MermaidCode      string
	Explanation      string
	ComponentMapping map[string]string
	// MappingText preserves the stage-2 output as received, before
	// line parsing and node-ID filtering.
	MappingText string
	Validation  diagram.ValidationResult
}

var mappingLineRe = regexp.MustCompile(`^[\s\-*]*(?:\d+\.\s*)?` + "`?" + `([^:` + "`" + `]+?)` + "`?" + `\s*:\s*` + "`?" + `([^\s` + "`" + `]+)` + "`?" + `\s*$`)

// ParseComponentMapping extracts `Component: path` pairs from the stage-2
// output. The model's output is freeform text, so parsing is best-effort:
// lines that do not look like a mapping are ignored, never fatal.
func ParseComponentMapping(text string) map[string]string {
	mapping := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		m := mappingLineRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		path := strings.TrimSpace(m[2])
		if name == "" || path == "" {
			continue
		}
		mapping[name] = path
	}
	return mapping
}
