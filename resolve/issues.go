package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

// Resolution failures are expected, data-dependent outcomes, not software
// faults. Each carries exactly one reason from this fixed vocabulary.
const (
	// ReasonURLNotInMapping: the path has no known canonical document.
	ReasonURLNotInMapping = "url-not-in-mapping"
	// ReasonEntityNotFound: the entity URL is absent from the entity index.
	ReasonEntityNotFound = "entity-not-found"
	// ReasonAnchorNotFound: the document exists but no anchor matched.
	ReasonAnchorNotFound = "anchor-not-found"
	// ReasonNoAnchors: the target document carries no anchor data at all.
	ReasonNoAnchors = "no-anchors"
	// ReasonHeaderLink: a valid document-level link with no anchor,
	// downgraded to formatted text rather than failed.
	ReasonHeaderLink = "header-link"
)

// Issue records one link that could not be resolved to a local target.
type Issue struct {
	Path   string
	Text   string
	Reason string
}

// DocumentError records an I/O failure on one document. The run continues
// with the remaining documents.
type DocumentError struct {
	Path string
	Err  error
}

func (e DocumentError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Path, e.Err)
}

// Report aggregates the outcome of one resolution pass.
type Report struct {
	Issues    []Issue
	Errors    []DocumentError
	Rewritten int
	Unchanged int
}

// ByReason groups issues by their reason tag.
func (r *Report) ByReason() map[string][]Issue {
	grouped := map[string][]Issue{}
	for _, issue := range r.Issues {
		grouped[issue.Reason] = append(grouped[issue.Reason], issue)
	}
	return grouped
}

// Log emits a per-reason summary; verbose additionally lists each issue.
func (r *Report) Log(logger interfaces.Logger, verbose bool) {
	if logger == nil {
		logger = logging.NoOp()
	}

	logger.Info("resolution finished",
		"rewritten", r.Rewritten,
		"unchanged", r.Unchanged,
		"issues", len(r.Issues),
		"errors", len(r.Errors),
	)

	grouped := r.ByReason()
	reasons := make([]string, 0, len(grouped))
	for reason := range grouped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	for _, reason := range reasons {
		issues := grouped[reason]
		logger.Info("unresolved links", "reason", reason, "count", len(issues))
		if !verbose {
			continue
		}
		for _, issue := range issues {
			logger.Info("unresolved link", "reason", reason, "path", issue.Path, "text", issue.Text)
		}
	}

	for _, docErr := range r.Errors {
		logger.Error("document failed", "path", docErr.Path, "error", docErr.Err)
	}
}

func (r *Report) merge(other fileResult) {
	r.Issues = append(r.Issues, other.issues...)
	if other.err != nil {
		r.Errors = append(r.Errors, *other.err)
		return
	}
	if other.rewritten {
		r.Rewritten++
	} else {
		r.Unchanged++
	}
}

// FallbackStyle selects how an unresolvable link is rendered.
type FallbackStyle string

const (
	FallbackBold   FallbackStyle = "bold"
	FallbackItalic FallbackStyle = "italic"
	FallbackPlain  FallbackStyle = "plain"
	// FallbackNone keeps the original link untouched and suppresses issue
	// recording; the user has opted to keep raw links.
	FallbackNone FallbackStyle = "none"
)

// ParseFallbackStyle validates a configuration string.
func ParseFallbackStyle(value string) (FallbackStyle, error) {
	switch FallbackStyle(strings.ToLower(strings.TrimSpace(value))) {
	case FallbackBold:
		return FallbackBold, nil
	case FallbackItalic:
		return FallbackItalic, nil
	case FallbackPlain:
		return FallbackPlain, nil
	case FallbackNone, "":
		return FallbackNone, nil
	}
	return "", fmt.Errorf("resolve: unknown fallback style %q", value)
}
