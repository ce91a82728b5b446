package diagram

import "strings"

const indentUnit = "    "

// lineKind classifies a line for the indentation pass.
type lineKind int

const (
	lineContent lineKind = iota
	lineSubgraphOpen
	lineSubgraphClose
	lineBlank
)

func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank
	case trimmed == "end":
		return lineSubgraphClose
	case strings.HasPrefix(trimmed, "subgraph "), trimmed == "subgraph":
		return lineSubgraphOpen
	}
	return lineContent
}

// FormatMermaidCode re-indents the diagram line by line: subgraph bodies are
// indented one level per nesting depth, blank lines pass through untouched.
// Lines are classified first so an unbalanced `end` cannot push the level
// negative; the scan is a formatting pass only and does not validate
// structure beyond that.
func FormatMermaidCode(code string) string {
	lines := strings.Split(code, "\n")
	var out []string
	level := 0

	for _, line := range lines {
		switch classifyLine(line) {
		case lineBlank:
			out = append(out, "")
		case lineSubgraphClose:
			if level > 0 {
				level--
			}
			out = append(out, strings.Repeat(indentUnit, level)+strings.TrimSpace(line))
		case lineSubgraphOpen:
			out = append(out, strings.Repeat(indentUnit, level)+strings.TrimSpace(line))
			level++
		default:
			out = append(out, strings.Repeat(indentUnit, level)+strings.TrimSpace(line))
		}
	}

	return strings.Join(out, "\n")
}
