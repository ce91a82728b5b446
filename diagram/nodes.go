package diagram

import (
	"regexp"
	"strings"
)

var nodeDeclRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)[\[({]`)

var nodeRefRe = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9_]*)[\[({]`)

// ExtractNodeIDs scans for node declarations at line starts and returns the
// de-duplicated set of identifiers in discovery order.
func ExtractNodeIDs(code string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "subgraph") || strings.HasPrefix(trimmed, "click") || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		m := nodeDeclRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		ids = append(ids, m[1])
	}
	return ids
}

// DeclaredNodeIDs collects the node identifiers shaped anywhere in a line,
// including nodes first declared on the right side of an arrow
// (`A[Start] --> B[End]` declares both A and B). Click lines, comments, and
// subgraph declarations are skipped.
func DeclaredNodeIDs(code string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "subgraph") || strings.HasPrefix(trimmed, "click") || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		for _, m := range nodeRefRe.FindAllStringSubmatch(line, -1) {
			set[m[1]] = struct{}{}
		}
	}
	return set
}

// colorStyles is the fixed palette appended when a diagram carries no
// styling of its own.
var colorStyles = []string{
	stylesMarker,
	"classDef frontend fill:#42A5F5,stroke:#1976D2,color:#fff",
	"classDef backend fill:#66BB6A,stroke:#388E3C,color:#fff",
	"classDef database fill:#FFA726,stroke:#F57C00,color:#fff",
	"classDef external fill:#AB47BC,stroke:#7B1FA2,color:#fff",
	"classDef api fill:#EC407A,stroke:#C2185B,color:#fff",
}

// EnsureColorStyles appends the semantic class palette unless the diagram
// already defines any classDef.
func EnsureColorStyles(code string) string {
	if strings.Contains(code, "classDef") {
		return code
	}

	out := strings.TrimRight(code, "\n")
	return out + "\n\n" + strings.Join(colorStyles, "\n") + "\n"
}
