package diagram

import (
	"fmt"
	"regexp"
	"strings"
)

// diagramTypes is the allow-list of known first-line keywords. Unknown types
// produce a warning rather than an error so future Mermaid diagram types
// stay usable.
var diagramTypes = []string{
	"flowchart",
	"graph",
	"sequenceDiagram",
	"classDiagram",
	"stateDiagram",
	"erDiagram",
	"journey",
	"gantt",
	"pie",
	"gitGraph",
	"mindmap",
	"timeline",
	"quadrantChart",
	"requirementDiagram",
	"C4Context",
	"architecture",
}

type severity int

const (
	severityWarning severity = iota
	severityError
)

// antiPattern is one entry of the fixed lexical check table. Each pattern
// carries its own severity and message.
type antiPattern struct {
	re       *regexp.Regexp
	severity severity
	message  string
}

var antiPatterns = []antiPattern{
	{
		re:       regexp.MustCompile(`\[[^"\]\n]*[&<>][^"\]\n]*\]`),
		severity: severityError,
		message:  "node label contains unquoted special characters; wrap the label in double quotes",
	},
	{
		re:       regexp.MustCompile(`-->\|\s+[^|\n]*\||-->\|[^|\n]*\s+\|`),
		severity: severityWarning,
		message:  "relationship label is padded with spaces inside the pipes",
	},
	{
		re:       regexp.MustCompile(`(?m)^\s*subgraph\b[^\n]*:::`),
		severity: severityError,
		message:  "class style applied directly on a subgraph declaration",
	},
	{
		re:       regexp.MustCompile(`(?m)^\s*subgraph\s+\w+\[`),
		severity: severityWarning,
		message:  "subgraph declared with a node-style alias",
	},
	{
		re:       regexp.MustCompile(`%%\{\s*init\s*:`),
		severity: severityWarning,
		message:  "inline %%{init:} directive embedded in the diagram",
	},
}

// ValidateMermaidSyntax runs the lexical checks against the diagram text.
// This is not a grammar-aware parse: it catches gross structural defects
// (unknown type header, known anti-patterns, unbalanced delimiters) and
// returns them as data for the caller to act on.
func ValidateMermaidSyntax(code string) ValidationResult {
	result := ValidationResult{}

	if strings.TrimSpace(code) == "" {
		result.Errors = append(result.Errors, "diagram is empty")
		return result
	}

	if warn := checkDiagramType(code); warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}

	for _, p := range antiPatterns {
		matches := p.re.FindAllString(code, -1)
		if len(matches) == 0 {
			continue
		}
		msg := fmt.Sprintf("%s (%d occurrence(s))", p.message, len(matches))
		if p.severity == severityError {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
	}

	result.Errors = append(result.Errors, checkBalance(code)...)

	result.Valid = len(result.Errors) == 0
	return result
}

// checkDiagramType inspects the first non-blank line. A leading directive or
// front-matter marker also counts as a valid header.
func checkDiagramType(code string) string {
	var first string
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			first = strings.TrimSpace(line)
			break
		}
	}

	if strings.HasPrefix(first, "%%") || strings.HasPrefix(first, "---") {
		return ""
	}

	keyword := first
	if idx := strings.IndexAny(first, " \t"); idx > 0 {
		keyword = first[:idx]
	}
	keyword = strings.TrimSuffix(keyword, "-beta")

	for _, t := range diagramTypes {
		if keyword == t {
			return ""
		}
	}
	return fmt.Sprintf("first line %q does not declare a known diagram type", first)
}

// checkBalance is a single-pass stack scan over brackets, parentheses,
// braces, and double quotes. It understands delimiter nesting only, not
// diagram grammar.
func checkBalance(code string) []string {
	var errors []string
	var stack []rune
	inQuote := false

	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}

	for _, r := range code {
		if r == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 {
				errors = append(errors, fmt.Sprintf("unmatched closing %q", string(r)))
				continue
			}
			top := stack[len(stack)-1]
			if top != pairs[r] {
				errors = append(errors, fmt.Sprintf("mismatched %q closed by %q", string(top), string(r)))
			}
			stack = stack[:len(stack)-1]
		}
	}

	for _, r := range stack {
		errors = append(errors, fmt.Sprintf("unclosed %q", string(r)))
	}
	if inQuote {
		errors = append(errors, "unterminated double quote")
	}
	return errors
}
