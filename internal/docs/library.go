// Package docs reads the markdown documents mdpull pages through.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
)

// ErrNoDocuments is returned when a directory holds no markdown file.
var ErrNoDocuments = errors.New("no markdown documents")

// Doc is one markdown file with its front matter split off.
type Doc struct {
	// Path is relative to the library root, slash separated.
	Path  string
	Abs   string
	Title string
	Tags  []string
	Body  string
}

type matter struct {
	Title string   `yaml:"title" toml:"title" json:"title"`
	Tags  []string `yaml:"tags" toml:"tags" json:"tags"`
}

// Library is the ordered set of markdown files under a root directory.
type Library struct {
	root   string
	loader *fsLoader
	paths  []string
}

// Open builds a library for target. A directory becomes the root and its
// first document is returned as start; a file opens its own directory and
// starts at the file.
func Open(target string) (*Library, string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, "", err
	}

	root, start := abs, ""
	if !info.IsDir() {
		if !isMarkdown(info.Name()) {
			return nil, "", fmt.Errorf("%s: not a markdown file", target)
		}
		root, start = filepath.Dir(abs), info.Name()
	}

	lib := &Library{root: root, loader: newFSLoader(root)}
	if err := lib.Rescan(); err != nil {
		return nil, "", err
	}
	if start == "" {
		if len(lib.paths) == 0 {
			return nil, "", fmt.Errorf("%s: %w", filepath.Base(root), ErrNoDocuments)
		}
		start = lib.paths[0]
	}
	return lib, start, nil
}

// Root is the absolute library directory.
func (l *Library) Root() string { return l.root }

// Paths lists the documents in reading order.
func (l *Library) Paths() []string { return slices.Clone(l.paths) }

// Rescan re-reads the directory tree.
func (l *Library) Rescan() error {
	l.loader = newFSLoader(l.root)
	paths, err := l.loader.walk("")
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", l.root, err)
	}
	l.paths = paths
	return nil
}

// Next returns the document that follows rel in reading order.
func (l *Library) Next(rel string) (string, bool) {
	i := slices.Index(l.paths, rel)
	if i < 0 || i+1 >= len(l.paths) {
		return "", false
	}
	return l.paths[i+1], true
}

// Abs resolves a library-relative path.
func (l *Library) Abs(rel string) string {
	return l.loader.abs(rel)
}

// Rel maps an absolute path back into the library. ok is false for files
// outside the root.
func (l *Library) Rel(abs string) (string, bool) {
	rel, err := filepath.Rel(l.root, filepath.Clean(abs))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Read loads rel and splits off its front matter.
func (l *Library) Read(rel string) (Doc, error) {
	abs := l.Abs(rel)
	data, err := os.ReadFile(abs)
	if err != nil {
		return Doc{}, err
	}
	var meta matter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Doc{}, fmt.Errorf("%s: front matter: %w", rel, err)
	}
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	}
	return Doc{
		Path:  rel,
		Abs:   abs,
		Title: title,
		Tags:  meta.Tags,
		Body:  string(body),
	}, nil
}
