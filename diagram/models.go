// Package diagram holds the deterministic post-processing applied to raw
// generated Mermaid text: validation, click-event management, color styling,
// GitHub link rewriting, and indentation.
package diagram

// ClickEvent links a diagram node to a filesystem path or URL. One node has
// exactly one path; one path may back several nodes.
type ClickEvent struct {
	NodeID string
	Path   string
}

// ValidationResult is the outcome of a syntax check. Warnings never affect
// validity; the decision to block on an invalid diagram belongs to the
// caller, not the validator.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}
