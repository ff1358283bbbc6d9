package docs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var errNotDir = errors.New("path is not a directory")

type entry struct {
	name  string
	path  string
	isDir bool
}

// fsLoader lists markdown files and the directories that contain them.
type fsLoader struct {
	root  string
	cache map[string]bool
}

func newFSLoader(root string) *fsLoader {
	return &fsLoader{
		root:  root,
		cache: make(map[string]bool),
	}
}

// list returns the immediate children of relPath, files before directories,
// each group sorted case-insensitively.
func (l *fsLoader) list(relPath string) ([]entry, error) {
	dir := l.abs(relPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			childPath := join(relPath, name)
			has, err := l.hasMarkdown(childPath)
			if err != nil {
				return nil, err
			}
			if !has {
				continue
			}
			entries = append(entries, entry{name: name, path: childPath, isDir: true})
			continue
		}
		if !isMarkdown(name) {
			continue
		}
		entries = append(entries, entry{name: name, path: join(relPath, name)})
	}

	sort.Slice(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		switch {
		case ei.isDir == ej.isDir:
			return strings.ToLower(ei.name) < strings.ToLower(ej.name)
		case ej.isDir:
			return true
		default:
			return false
		}
	})
	return entries, nil
}

// hasMarkdown reports whether relPath contains at least one markdown file
// within its subtree.
func (l *fsLoader) hasMarkdown(relPath string) (bool, error) {
	if cached, ok := l.cache[relPath]; ok {
		return cached, nil
	}

	entries, err := os.ReadDir(l.abs(relPath))
	if err != nil {
		return false, err
	}

	for _, de := range entries {
		name := de.Name()
		if de.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			has, err := l.hasMarkdown(join(relPath, name))
			if err != nil {
				return false, err
			}
			if has {
				l.cache[relPath] = true
				return true, nil
			}
			continue
		}
		if isMarkdown(name) {
			l.cache[relPath] = true
			return true, nil
		}
	}

	l.cache[relPath] = false
	return false, nil
}

// walk returns every markdown file below relPath in reading order.
func (l *fsLoader) walk(relPath string) ([]string, error) {
	entries, err := l.list(relPath)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.isDir {
			files = append(files, e.path)
			continue
		}
		nested, err := l.walk(e.path)
		if err != nil {
			return nil, err
		}
		files = append(files, nested...)
	}
	return files, nil
}

func (l *fsLoader) abs(relPath string) string {
	if relPath == "" {
		return l.root
	}
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", "node_modules", ".hg", ".svn", ".idea", ".vscode":
		return true
	default:
		return false
	}
}

func isMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".mdx")
}
