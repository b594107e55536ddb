// Package fs provides file-based export of rendered records.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"demonchart"
)

// Ensure FileStore implements demonchart.ExportStore at compile time.
var _ demonchart.ExportStore = (*FileStore)(nil)

// FileStore implements demonchart.ExportStore with atomic update semantics.
// Records are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one rendered record to the temp directory.
func (s *FileStore) Save(ctx context.Context, rec *demonchart.Record, markdown string) error {
	if rec == nil || rec.Name == "" {
		return demonchart.Errorf(demonchart.EINVALID, "record with name is required")
	}

	fullPath := filepath.Join(s.tempDir(), RecordFileName(rec))

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	content := FormatRecord(rec, markdown)
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit atomically replaces the final directory with the temp directory.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards pending saves.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// RecordFileName returns the export file name for a record: a position
// prefix keeps directory listings in chart order, followed by a slug of
// the level name. Example: 003-silent-circles.md
func RecordFileName(rec *demonchart.Record) string {
	slug := slugify(rec.Name)
	if slug == "" {
		slug = "record"
	}
	return fmt.Sprintf("%03d-%s.md", rec.Position+1, slug)
}

// FormatRecord formats a record with YAML frontmatter followed by the
// rendered Markdown body.
func FormatRecord(rec *demonchart.Record, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "name: %s\n", rec.Name)
	if rec.Author != "" {
		fmt.Fprintf(&b, "author: %s\n", rec.Author)
	}
	fmt.Fprintf(&b, "value: %g\n", rec.Value)
	fmt.Fprintf(&b, "position: %d\n", rec.Position+1)
	if rec.PrimaryLinkURL != "" {
		fmt.Fprintf(&b, "video: %s\n", rec.PrimaryLinkURL)
	}
	if rec.SecondaryLinkURL != "" {
		fmt.Fprintf(&b, "browser: %s\n", rec.SecondaryLinkURL)
	}
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")
	return b.String()
}

// slugify creates a file-name-safe slug from a level name.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func slugify(name string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
