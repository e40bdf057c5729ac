package docstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bme3412/q2-software/internal/model"
)

// FileStore resolves tickers to documents under two roots: one holding raw
// transcript text, one holding parsed-JSON output. Missing directories and
// unreadable files are treated as "no documents found", never as errors.
type FileStore struct {
	TranscriptsDir string
	ParsedDir      string
}

func NewFileStore(transcriptsDir, parsedDir string) *FileStore {
	return &FileStore{TranscriptsDir: transcriptsDir, ParsedDir: parsedDir}
}

// WalkFiles collects up to max file paths under root for which keep returns
// true. Directories that cannot be read are skipped.
func (s *FileStore) WalkFiles(root string, keep func(path string) bool, max int) []string {
	var results []string
	s.walk(root, keep, max, &results)
	return results
}

func (s *FileStore) walk(dir string, keep func(path string) bool, max int, results *[]string) {
	if len(*results) >= max {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if len(*results) >= max {
			return
		}
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			s.walk(full, keep, max, results)
		} else if keep(full) {
			*results = append(*results, full)
		}
	}
}

// FindDocuments returns up to maxFiles document refs for a normalized ticker,
// parsed-JSON documents first so structured metrics surface before raw text.
// Matching is case-insensitive filename containment.
func (s *FileStore) FindDocuments(ticker string, maxFiles int) []model.DocumentRef {
	t := strings.ToLower(ticker)

	jsonFiles := s.WalkFiles(s.ParsedDir, func(p string) bool {
		base := strings.ToLower(filepath.Base(p))
		return strings.HasSuffix(base, ".json") && strings.Contains(base, t+"-parsed.json")
	}, maxFiles)

	txtFiles := s.WalkFiles(s.TranscriptsDir, func(p string) bool {
		base := strings.ToLower(filepath.Base(p))
		return strings.HasSuffix(base, ".txt") && strings.Contains(base, t+".txt")
	}, maxFiles)

	var refs []model.DocumentRef
	for _, f := range jsonFiles {
		refs = append(refs, model.DocumentRef{Ticker: ticker, Path: f, Kind: model.KindStructured})
	}
	for _, f := range txtFiles {
		refs = append(refs, model.DocumentRef{Ticker: ticker, Path: f, Kind: model.KindRawText})
	}
	if len(refs) > maxFiles {
		refs = refs[:maxFiles]
	}
	return refs
}

// ReadTextFile returns the file contents, or "" when the file cannot be read.
func (s *FileStore) ReadTextFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
