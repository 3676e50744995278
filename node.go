// Package reim bridges a declarative component tree onto an immediate-mode
// GUI toolkit.
//
// A reconciliation engine (the declarative side) mutates a persistent shadow
// tree through the HostConfig contract. Once per rendered frame, a Renderer
// walks the last committed snapshot of that tree and issues the corresponding
// immediate-mode toolkit calls, scoping every widget under its node's stable
// id so the toolkit can correlate focus, hover and animation state across
// frames even though it keeps no widget objects of its own.
package reim

import "sync/atomic"

// NodeID uniquely identifies a node in the shadow tree.
// IDs are process-unique, assigned once at construction, and never reused
// for the node's lifetime. The renderer pushes them onto the toolkit's ID
// stack, which is what keeps two structurally identical widgets from
// aliasing each other's internal state.
type NodeID uint64

var nextNodeID atomic.Uint64

func newNodeID() NodeID {
	return NodeID(nextNodeID.Add(1))
}

// Node is either an *ElementNode or a *TextNode.
type Node interface {
	ID() NodeID
	Parent() *ElementNode

	setParent(p *ElementNode)
	destroy()
}

// ElementNode is one instance of a declarative component mapped onto a host
// primitive ("window", "button", ...). Props are replaced wholesale on every
// commit; children are spliced in place. The node also carries per-kind
// transient caches (last-synced window position, uncontrolled input buffers)
// that persist across frames to support controlled-prop diffing.
type ElementNode struct {
	id       NodeID
	kind     string
	props    *Props
	children []Node
	parent   *ElementNode

	// Render-handler state, lazily allocated on first render.
	state *nodeState

	// Resources owned by render handlers on behalf of this node,
	// released synchronously when the node leaves the tree.
	releasers []func()
}

// NewElementNode allocates a detached element node with a fresh id.
func NewElementNode(kind string, props *Props) *ElementNode {
	if props == nil {
		props = NewProps()
	}
	return &ElementNode{
		id:    newNodeID(),
		kind:  kind,
		props: props,
	}
}

// ID returns the node's stable identity.
func (n *ElementNode) ID() NodeID { return n.id }

// Kind returns the host primitive tag.
func (n *ElementNode) Kind() string { return n.kind }

// Props returns the current prop bag. The bag is replaced wholesale on
// commit; callers must not retain it across commits.
func (n *ElementNode) Props() *Props { return n.props }

// Parent returns the node's parent, or nil while detached.
// The reference is non-owning and valid only while the node is attached.
func (n *ElementNode) Parent() *ElementNode { return n.parent }

// Children returns the node's children in order.
func (n *ElementNode) Children() []Node { return n.children }

func (n *ElementNode) setParent(p *ElementNode) { n.parent = p }

// OnRelease registers a cleanup for a native resource a render handler
// acquired for this node (e.g. a toolkit-side handle). It runs exactly once,
// when the node is removed from the tree.
func (n *ElementNode) OnRelease(fn func()) {
	n.releasers = append(n.releasers, fn)
}

// destroy releases handler-owned resources for the node and its subtree.
// Called synchronously when the declarative engine removes the node.
func (n *ElementNode) destroy() {
	for _, child := range n.children {
		child.destroy()
		child.setParent(nil)
	}
	n.children = nil
	for _, fn := range n.releasers {
		fn()
	}
	n.releasers = nil
	n.state = nil
}

// ensureState returns the node's transient render state, allocating it on
// first use.
func (n *ElementNode) ensureState() *nodeState {
	if n.state == nil {
		n.state = &nodeState{}
	}
	return n.state
}

// TextNode is literal text content. It is mutated in place when the text
// changes; the node itself is never re-created for a content update.
type TextNode struct {
	id     NodeID
	text   string
	parent *ElementNode
}

// NewTextNode allocates a detached text node with a fresh id.
func NewTextNode(text string) *TextNode {
	return &TextNode{id: newNodeID(), text: text}
}

// ID returns the node's stable identity.
func (n *TextNode) ID() NodeID { return n.id }

// Text returns the current content.
func (n *TextNode) Text() string { return n.text }

// Parent returns the node's parent, or nil while detached.
func (n *TextNode) Parent() *ElementNode { return n.parent }

func (n *TextNode) setParent(p *ElementNode) { n.parent = p }

func (n *TextNode) destroy() {}

// RootContainer is the single mutable root the declarative engine targets.
// Its children are the top-level fragments of the tree (typically one or
// more independent windows). The render pass never reads the mutable slice
// directly; it consumes the read-only snapshot published at commit, so a
// commit in progress is never partially visible.
type RootContainer struct {
	children []Node
	snapshot atomic.Pointer[[]Node]
}

// NewRootContainer creates an empty container with an empty published
// snapshot.
func NewRootContainer() *RootContainer {
	c := &RootContainer{}
	empty := []Node{}
	c.snapshot.Store(&empty)
	return c
}

// Children returns the mutable root children. Only the host configuration
// adapter should call this; the render pass uses Snapshot.
func (c *RootContainer) Children() []Node { return c.children }

// Snapshot returns the root children as of the last completed commit.
func (c *RootContainer) Snapshot() []Node {
	return *c.snapshot.Load()
}

// publish atomically replaces the snapshot with a copy of the current
// children. Publication is the serialization point between the commit phase
// and the render pass.
func (c *RootContainer) publish() {
	snap := make([]Node, len(c.children))
	copy(snap, c.children)
	c.snapshot.Store(&snap)
}
