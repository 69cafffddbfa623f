// Package content defines the content documents that graphlearn lays out.
//
// A [Document] is an ordered list of [Node] values. Each node has a stable ID,
// a [Category] (video, webpage or text) that decides its rectangle on the
// canvas, an optional URL or text payload, and a reference to its parent.
// Exactly one node has no parent: the root.
//
// # Two ways to describe the tree
//
// Parent-id mode (the default) links each node to its parent by ID:
//
//	{
//	  "title": "Learn Next.js",
//	  "nodes": [
//	    {"id": "1", "type": "video", "url": "https://www.youtube.com/embed/dQw4w9WgXcQ"},
//	    {"id": "2", "type": "webpage", "url": "https://nextjs.org/", "parent_id": "1"},
//	    {"id": "3", "type": "text", "text": "Routing basics", "parent_id": "2"}
//	  ]
//	}
//
// Relationship mode lists (source, target) index pairs instead; the root is
// the first node. It is selected whenever "relationships" is non-empty, and
// node parent IDs are then ignored. Nodes may omit their ID in this mode and
// are then named by position ("0", "1", ...).
//
// # Validation
//
// [BuildTree] turns a document into a [Tree] with an ID index and an ordered
// parent → children adjacency, both built in one pass. Malformed input fails
// fast with a structured error from pkg/errors: duplicate IDs, no root,
// several roots, parents that do not exist, and cycles are all rejected.
//
// # Formats and sources
//
// Documents are read from JSON, YAML, TOML or HCL ([Decode], [ReadFile]) or
// fetched over HTTP ([URLSource]). The mongo subpackage loads them from a
// MongoDB collection. All sources implement [Source].
package content
