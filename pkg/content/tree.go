package content

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/graphlearn/pkg/errors"
)

// Tree is a validated, indexed view of a [Document].
//
// It holds the ID → index map and the parent → ordered children adjacency.
// Children keep document order. A Tree is immutable once built and only
// obtainable through [BuildTree] or [BuildTreeFromRelationships], so every
// node in it is reachable from [Tree.Root].
type Tree struct {
	title    string
	nodes    []Node
	root     int
	index    map[string]int
	children [][]int
	edges    []Edge
}

// Title returns the document title.
func (t *Tree) Title() string { return t.title }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node index.
func (t *Tree) Root() int { return t.root }

// Node returns the node at index i.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Nodes returns the nodes in document order. The slice must not be modified.
func (t *Tree) Nodes() []Node { return t.nodes }

// Index returns the index of the node with the given ID.
func (t *Tree) Index(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Children returns the ordered child indices of node i.
func (t *Tree) Children(i int) []int { return t.children[i] }

// IsLeaf reports whether node i has no children.
func (t *Tree) IsLeaf(i int) bool { return len(t.children[i]) == 0 }

// Edges returns every parent → child link, grouped by parent index with each
// parent's children in declaration order.
func (t *Tree) Edges() []Edge { return t.edges }

// BuildTree validates doc and builds its [Tree]. Documents with
// relationships are delegated to [BuildTreeFromRelationships].
//
// In parent-id mode the checks are, in order: non-empty, valid and unique
// IDs, exactly one root, every parent reference resolves, and every node is
// reachable from the root. A node that has a resolvable parent but cannot be
// reached from the root sits on a parent cycle.
func BuildTree(doc *Document) (*Tree, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}
	if doc.UsesRelationships() {
		return BuildTreeFromRelationships(doc)
	}

	t, err := indexNodes(doc)
	if err != nil {
		return nil, err
	}

	var roots []string
	for i, n := range t.nodes {
		if n.IsRoot() {
			roots = append(roots, n.ID)
			t.root = i
		}
	}
	switch {
	case len(roots) == 0:
		return nil, errors.New(errors.ErrCodeNoRoot, "no node without a parent")
	case len(roots) > 1:
		return nil, errors.New(errors.ErrCodeMultipleRoots, "%d nodes without a parent: %s", len(roots), strings.Join(roots, ", "))
	}

	for i, n := range t.nodes {
		if n.IsRoot() {
			continue
		}
		p, ok := t.index[*n.ParentID]
		if !ok {
			return nil, errors.New(errors.ErrCodeDanglingParent, "node %q: parent %q not found", n.ID, *n.ParentID)
		}
		if p == i {
			return nil, errors.New(errors.ErrCodeCycle, "node %q is its own parent", n.ID)
		}
		t.children[p] = append(t.children[p], i)
	}

	seen := t.reach()
	for i, ok := range seen {
		if !ok {
			return nil, errors.New(errors.ErrCodeCycle, "node %q is not reachable from root %q (parent cycle)", t.nodes[i].ID, t.nodes[t.root].ID)
		}
	}
	t.collectEdges()
	return t, nil
}

// BuildTreeFromRelationships validates doc in relationship mode. The root is
// the first node. A node may have more than one parent; layout places it under
// the first parent that reaches it. Duplicate pairs are ignored.
//
// Relationships address nodes by position, so a node without an ID gets its
// position as ID in the tree. doc itself is not modified.
func BuildTreeFromRelationships(doc *Document) (*Tree, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}
	indexed := *doc
	indexed.Nodes = withIndexIDs(doc.Nodes)
	t, err := indexNodes(&indexed)
	if err != nil {
		return nil, err
	}
	t.root = 0

	n := len(t.nodes)
	type pair struct{ s, d int }
	dup := make(map[pair]bool, len(doc.Relationships))
	for _, r := range doc.Relationships {
		if r.Source < 0 || r.Source >= n || r.Target < 0 || r.Target >= n {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "relationship %d -> %d: index out of range [0, %d)", r.Source, r.Target, n)
		}
		if r.Source == r.Target {
			return nil, errors.New(errors.ErrCodeCycle, "node %q links to itself", t.nodes[r.Source].ID)
		}
		if r.Target == t.root {
			return nil, errors.New(errors.ErrCodeCycle, "root %q has an incoming link from %q", t.nodes[t.root].ID, t.nodes[r.Source].ID)
		}
		if dup[pair{r.Source, r.Target}] {
			continue
		}
		dup[pair{r.Source, r.Target}] = true
		t.children[r.Source] = append(t.children[r.Source], r.Target)
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}
	seen := t.reach()
	for i, ok := range seen {
		if !ok {
			return nil, errors.New(errors.ErrCodeUnreachableNode, "node %q is not reachable from root %q", t.nodes[i].ID, t.nodes[t.root].ID)
		}
	}
	t.collectEdges()
	return t, nil
}

// withIndexIDs returns nodes with every empty ID replaced by the node's
// position. The slice is copied only when an ID is missing.
func withIndexIDs(nodes []Node) []Node {
	out, copied := nodes, false
	for i, n := range nodes {
		if n.ID != "" {
			continue
		}
		if !copied {
			out, copied = slices.Clone(nodes), true
		}
		out[i].ID = strconv.Itoa(i)
	}
	return out
}

// indexNodes builds the ID index in one pass and validates IDs and URLs.
func indexNodes(doc *Document) (*Tree, error) {
	if len(doc.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no nodes")
	}
	t := &Tree{
		title:    doc.Title,
		nodes:    doc.Nodes,
		index:    make(map[string]int, len(doc.Nodes)),
		children: make([][]int, len(doc.Nodes)),
	}
	for i, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if prev, dup := t.index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateNode, "node id %q used at positions %d and %d", n.ID, prev, i)
		}
		if n.URL != "" {
			if err := errors.ValidateURL(n.URL); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidURL, err, "node %q", n.ID)
			}
		}
		t.index[n.ID] = i
	}
	return t, nil
}

// reach marks every node reachable from the root with an explicit stack.
func (t *Tree) reach() []bool {
	seen := make([]bool, len(t.nodes))
	stack := []int{t.root}
	seen[t.root] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range t.children[i] {
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return seen
}

// checkAcyclic runs a three-colour depth-first search from every node.
func (t *Tree) checkAcyclic() error {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(t.nodes))
	type frame struct{ node, next int }

	for start := range t.nodes {
		if color[start] != white {
			continue
		}
		stack := []frame{{node: start}}
		color[start] = grey
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			kids := t.children[top.node]
			if top.next == len(kids) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			c := kids[top.next]
			top.next++
			switch color[c] {
			case grey:
				return errors.New(errors.ErrCodeCycle, "link %q -> %q closes a cycle", t.nodes[top.node].ID, t.nodes[c].ID)
			case white:
				color[c] = grey
				stack = append(stack, frame{node: c})
			}
		}
	}
	return nil
}

// collectEdges lists edges by parent index, keeping each parent's children in
// declaration order.
func (t *Tree) collectEdges() {
	edges := make([]Edge, 0, len(t.nodes)-1)
	for p, kids := range t.children {
		for _, c := range kids {
			edges = append(edges, Edge{Parent: p, Child: c})
		}
	}
	t.edges = edges
}
