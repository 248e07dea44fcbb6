// Package io builds string-keyed trees from input documents.
//
// # Overview
//
// Every loader returns a [Tree], an [rtree.Tree] of [rtree.BasicNode] values
// keyed by string id. Three input shapes are supported:
//
//   - Node lists in JSON or YAML, describing each node with its parent
//   - Path lists, one slash-separated path per line
//   - Directory walks over the local filesystem
//
// # Node List Format
//
// A node list has a single "nodes" array. Nodes must appear after their
// parent; the first node is the root:
//
//	{
//	  "nodes": [
//	    {"id": "app", "label": "Application"},
//	    {"id": "api", "parent": "app"},
//	    {"id": "db", "parent": "app", "children": ["db-replica"]}
//	  ]
//	}
//
// The same structure is accepted as YAML. Fields:
//
//   - id: Unique node identifier (required)
//   - parent: Parent id (required for every node but the first)
//   - label: Display text (defaults to the id)
//   - children: Extra child ids, listed before children found via parent
//     links. Ids that no node defines render as unresolved.
//
// A first node that names a parent produces a detached sub-tree.
//
// # Path Lists
//
// [FromPaths] turns each path component into a node keyed by its cleaned
// absolute path under the root "/":
//
//	/home/user/Documents
//	/home/user/Downloads
//	/etc
//
// [ReadPaths] reads such a list, skipping blank lines and lines starting
// with '#'.
//
// # Directory Walks
//
// [FromDir] walks a directory with a depth limit and keys nodes by their
// slash-separated path relative to the walked directory.
//
// # Import
//
// Use [ImportFile] to read a file with the format chosen from its extension,
// or [Read] with an explicit [Format]:
//
//	t, err := io.ImportFile("tree.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Validation failures are reported with codes from package errors, wrapping
// the rtree sentinel errors where the store rejected a node.
package io
