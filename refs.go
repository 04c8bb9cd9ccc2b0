package docmark

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goliatone/go-docmark/documents"
	"github.com/goliatone/go-docmark/urls"
)

var linkTargetPattern = regexp.MustCompile(`\]\(([^()\s]+)\)`)

// CollectEntityRefs scans the written documents for entity links so a
// resolve-only rerun can rebuild the entity index without the source HTML.
// Refs are deduplicated by canonical URL.
func (m *Module) CollectEntityRefs(set *documents.Set) ([]urls.EntityRef, []error) {
	var refs []urls.EntityRef
	var errs []error
	seen := map[string]bool{}

	for _, doc := range set.Docs() {
		if !doc.Written {
			continue
		}
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			errs = append(errs, fmt.Errorf("docmark refs: read %s: %w", doc.Path, err))
			continue
		}

		for _, match := range linkTargetPattern.FindAllSubmatch(data, -1) {
			target := m.aliases.Apply(m.classifier.Normalize(string(match[1])))
			if seen[target] {
				continue
			}
			if ref, ok := m.classifier.ParseEntity(target); ok {
				seen[target] = true
				refs = append(refs, ref)
			}
		}
	}

	return refs, errs
}
