package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rtree/pkg/errors"
	"github.com/matzehuels/rtree/pkg/rtree"
)

// Tree is the tree type produced by every loader.
type Tree = rtree.Tree[string, *Node]

// Node is the node type stored in a [Tree].
type Node = rtree.BasicNode[string]

// Format names an input document format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPaths Format = "paths"
)

// ParseFormat parses a format name. "yml" is accepted for YAML and "txt"
// for path lists.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "paths", "txt":
		return FormatPaths, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported input format: %q", s)
	}
}

// DetectFormat picks a format from a file extension. Unknown extensions are
// read as path lists.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatPaths
	}
}

type document struct {
	Nodes []node `json:"nodes" yaml:"nodes"`
}

type node struct {
	ID       string   `json:"id" yaml:"id"`
	Parent   *string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
}

// Read decodes a document of the given format from r. Read does not close r.
func Read(r io.Reader, format Format) (*Tree, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatPaths:
		return ReadPaths(r)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported input format: %q", format)
	}
}

// ReadJSON decodes a JSON node list from r.
//
// ReadJSON returns an error if the JSON is malformed, if an id is invalid
// or repeated, or if the node order does not form a tree (see [FromNodes]
// in package rtree). ReadJSON does not close r.
//
// [FromNodes]: github.com/matzehuels/rtree/pkg/rtree.FromNodes
func ReadJSON(r io.Reader) (*Tree, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return build(doc.Nodes)
}

// ReadYAML decodes a YAML node list from r. It validates like [ReadJSON].
func ReadYAML(r io.Reader) (*Tree, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return rtree.NewBasic[string](), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return build(doc.Nodes)
}

// ImportFile reads the file at path, choosing the format with
// [DetectFormat].
func ImportFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, DetectFormat(path))
}

// build links decoded nodes and hands them to rtree.FromNodes.
func build(entries []node) (*Tree, error) {
	nodes := make([]*rtree.BasicNode[string], 0, len(entries))
	byID := make(map[string]*rtree.BasicNode[string], len(entries))

	for _, e := range entries {
		if err := errors.ValidateNodeID(e.ID); err != nil {
			return nil, err
		}
		if _, dup := byID[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidTree, "duplicate node id %q", e.ID)
		}
		n := rtree.NewLabeledNode(e.ID, e.Label)
		for _, c := range e.Children {
			if err := errors.ValidateNodeID(c); err != nil {
				return nil, fmt.Errorf("node %s: %w", e.ID, err)
			}
			n.AddChildID(c)
		}
		if e.Parent != nil {
			n.SetParentID(*e.Parent)
			if p, ok := byID[*e.Parent]; ok {
				p.AddChildID(e.ID)
			}
		}
		nodes = append(nodes, n)
		byID[e.ID] = n
	}

	t, err := rtree.FromNodes[string](nodes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "build tree")
	}
	return t, nil
}
