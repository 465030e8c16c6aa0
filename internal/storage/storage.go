package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader persists uploaded image files and returns their public paths.
// Implementations must be safe for concurrent use; file writes are independent
// per file.
type Uploader interface {
	// Save writes the file under storedName and returns the public path that
	// gets persisted on the listing (e.g. "/uploads/<storedName>").
	Save(ctx context.Context, storedName string, r io.Reader, contentType string) (string, error)
	// Delete removes a previously saved file addressed by its public path.
	Delete(ctx context.Context, publicPath string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
var whitespace = regexp.MustCompile(`\s+`)

// SanitizeFilename makes an original filename filesystem-safe and
// human-traceable: whitespace becomes underscores, anything outside
// [a-zA-Z0-9._-] is stripped, and the result is lowercased. Any path
// components are discarded first.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = whitespace.ReplaceAllString(name, "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.ToLower(name)
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	return name
}

// StoredName generates a collision-resistant stored filename: a millisecond
// timestamp plus a random suffix, combined with the sanitized original name.
func StoredName(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), suffix, SanitizeFilename(original))
}
