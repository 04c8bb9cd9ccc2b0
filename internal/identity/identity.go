// Package identity derives the stable short identifiers used as output file
// stems. Identifiers are pure functions of a document's canonical URL so that
// repeated runs over the same source batch produce identical filenames and
// cross-references stay valid without any persisted state.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const stemLength = 10

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentID returns the short filename stem for a document, keyed by its
// canonical URL.
func DocumentID(canonicalURL string) string {
	return shortID("docmark:document:" + strings.TrimSpace(canonicalURL))
}

// BookID returns the short filename stem for a book's index page.
func BookID(bookURL string) string {
	return shortID("docmark:book:" + strings.TrimSpace(bookURL))
}

func shortID(key string) string {
	uid := UUID(key)
	if uid == uuid.Nil {
		return ""
	}
	hexed := strings.ReplaceAll(uid.String(), "-", "")
	return hexed[:stemLength]
}
