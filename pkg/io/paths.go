package io

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/rtree/pkg/errors"
	"github.com/matzehuels/rtree/pkg/rtree"
)

// RootPath is the id of the root node built by [FromPaths].
const RootPath = "/"

// FromPaths builds a tree with one node per path component.
//
// Node ids are cleaned absolute paths and labels are the final path element.
// Relative paths are anchored at [RootPath]. Parents are created on first
// use, so children keep the order in which paths introduced them. An empty
// list yields a tree holding only the root.
func FromPaths(paths []string) (*Tree, error) {
	t := rtree.NewBasic[string]()
	if err := t.AddRoot(rtree.NewLabeledNode(RootPath, RootPath)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add root")
	}

	for _, p := range paths {
		if err := errors.ValidatePath(p); err != nil {
			return nil, err
		}
		clean := path.Clean(RootPath + p)
		if clean == RootPath {
			continue
		}

		parent := RootPath
		for _, part := range strings.Split(clean[1:], "/") {
			id := path.Join(parent, part)
			if _, ok := t.Node(id); !ok {
				if err := t.AddChild(parent, rtree.NewLabeledNode(id, part)); err != nil {
					return nil, fmt.Errorf("path %s: %w", p, err)
				}
			}
			parent = id
		}
	}
	return t, nil
}

// ReadPaths reads one path per line from r and builds a tree with
// [FromPaths]. Blank lines and lines starting with '#' are skipped.
// ReadPaths does not close r.
func ReadPaths(r io.Reader) (*Tree, error) {
	var paths []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read paths")
	}
	return FromPaths(paths)
}

// FromDir walks dir and builds a tree of its entries, descending at most
// maxDepth levels below dir (negative means unlimited).
//
// The root id is "." labelled with the directory's base name; other ids are
// slash-separated paths relative to dir. Entries are visited in lexical
// order. Hidden entries (leading '.') are skipped when skipHidden is set.
func FromDir(dir string, maxDepth int, skipHidden bool) (*Tree, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dir)
	}

	t := rtree.NewBasic[string]()
	if err := t.AddRoot(rtree.NewLabeledNode(".", filepath.Base(abs))); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add root")
	}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == abs {
			return nil
		}
		if skipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if maxDepth >= 0 && strings.Count(rel, "/")+1 > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		parent := path.Dir(rel)
		return t.AddChild(parent, rtree.NewLabeledNode(rel, d.Name()))
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "walk %s", dir)
		}
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return t, nil
}
