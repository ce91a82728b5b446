package diagram

import (
	"fmt"
	"regexp"
	"strings"
)

const clickBlockMarker = "%% Click events"
const stylesMarker = "%% Styles"

var clickLineRe = regexp.MustCompile(`^\s*click\s+([A-Za-z][A-Za-z0-9_]*)\s+"([^"]*)"`)

// ExtractClickEvents scans for click declarations in source order.
// Duplicates are preserved as separate entries.
func ExtractClickEvents(code string) []ClickEvent {
	var events []ClickEvent
	for _, line := range strings.Split(code, "\n") {
		if m := clickLineRe.FindStringSubmatch(line); m != nil {
			events = append(events, ClickEvent{NodeID: m[1], Path: m[2]})
		}
	}
	return events
}

// UpdateClickEvents rewrites the diagram's click declarations from events.
// Any previous click block and stray individual click lines are stripped
// first, then a fresh block is inserted immediately before the styles
// section when one exists, otherwise appended at the end. The rewrite is
// idempotent: applying it twice with the same event list yields byte
// identical output.
func UpdateClickEvents(code string, events []ClickEvent) string {
	lines := stripClickLines(code)

	var block []string
	if len(events) > 0 {
		block = append(block, clickBlockMarker)
		for _, e := range events {
			block = append(block, fmt.Sprintf(`click %s "%s"`, e.NodeID, e.Path))
		}
	}

	stylesIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == stylesMarker {
			stylesIdx = i
			break
		}
	}

	var out []string
	if stylesIdx >= 0 {
		out = append(out, trimTrailingBlank(lines[:stylesIdx])...)
		if len(block) > 0 {
			out = append(out, "")
			out = append(out, block...)
		}
		out = append(out, "")
		out = append(out, lines[stylesIdx:]...)
		out = trimTrailingBlank(out)
	} else {
		out = trimTrailingBlank(lines)
		if len(block) > 0 {
			out = append(out, "")
			out = append(out, block...)
		}
	}

	return strings.Join(out, "\n") + "\n"
}

// PathsToGitHubURLs rewrites each click path that is not already an absolute
// URL into a GitHub blob URL for the given repository and branch. Absolute
// paths pass through untouched, so the operation is safe to re-apply.
func PathsToGitHubURLs(code string, repoURL string, branch string) string {
	repoURL = strings.TrimSuffix(repoURL, "/")

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		m := clickLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path := m[2]
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			continue
		}
		url := fmt.Sprintf("%s/blob/%s/%s", repoURL, branch, strings.TrimPrefix(path, "/"))
		lines[i] = strings.Replace(line, `"`+path+`"`, `"`+url+`"`, 1)
	}
	return strings.Join(lines, "\n")
}

// stripClickLines removes the click block marker and every click line,
// collapsing any doubled blank lines left behind.
func stripClickLines(code string) []string {
	var out []string
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == clickBlockMarker || clickLineRe.MatchString(line) {
			continue
		}
		if trimmed == "" && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
