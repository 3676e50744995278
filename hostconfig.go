package reim

import "log"

// HostConfig implements the tree-mutation contract the declarative
// reconciliation engine calls during its commit phase. All operations are
// synchronous, run on the single UI thread, and mutate only the shadow tree;
// nothing touches the toolkit until the next render pass.
//
// Structural operations never panic back into the engine's commit: a
// reference to a node that is not where the engine thinks it is indicates a
// reconciler bug, so the operation logs and degrades to the closest safe
// fallback (append for a missing insert anchor, no-op for a missing removal
// target) rather than corrupting the frame.
type HostConfig struct {
	container *RootContainer
}

// NewHostConfig creates the adapter for the given root container.
func NewHostConfig(container *RootContainer) *HostConfig {
	return &HostConfig{container: container}
}

// Container returns the root container this adapter mutates.
func (h *HostConfig) Container() *RootContainer { return h.container }

// CreateElementInstance allocates a detached element node with a fresh id.
func (h *HostConfig) CreateElementInstance(kind string, props *Props) *ElementNode {
	return NewElementNode(kind, props)
}

// CreateTextInstance allocates a detached text node with a fresh id.
func (h *HostConfig) CreateTextInstance(text string) *TextNode {
	return NewTextNode(text)
}

// AppendChild appends child to parent's children. A child that is still
// attached elsewhere is detached first so every node has exactly one parent.
func (h *HostConfig) AppendChild(parent *ElementNode, child Node) {
	h.detach(child)
	parent.children = append(parent.children, child)
	child.setParent(parent)
}

// InsertBefore inserts child into parent's children immediately before ref.
// A missing ref signals a reconciler bug: the insert logs and falls back to
// append so ordering degrades visibly instead of corrupting silently.
func (h *HostConfig) InsertBefore(parent *ElementNode, child, ref Node) {
	h.detach(child)
	idx := indexOf(parent.children, ref)
	if idx < 0 {
		log.Printf("reim: InsertBefore: reference node %d not found under node %d, appending", ref.ID(), parent.ID())
		parent.children = append(parent.children, child)
	} else {
		parent.children = append(parent.children, nil)
		copy(parent.children[idx+1:], parent.children[idx:])
		parent.children[idx] = child
	}
	child.setParent(parent)
}

// RemoveChild removes child from parent and destroys it, releasing any
// handler-owned native resources synchronously. Removing a node that is not
// present logs and leaves the tree untouched.
func (h *HostConfig) RemoveChild(parent *ElementNode, child Node) {
	idx := indexOf(parent.children, child)
	if idx < 0 {
		log.Printf("reim: RemoveChild: node %d not found under node %d", child.ID(), parent.ID())
		return
	}
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	child.setParent(nil)
	child.destroy()
}

// AppendChildToContainer appends a top-level fragment to the root. A child
// already present (an engine-driven move) is detached from its old position
// first.
func (h *HostConfig) AppendChildToContainer(c *RootContainer, child Node) {
	h.detach(child)
	unlinkFromContainer(c, child)
	c.children = append(c.children, child)
}

// InsertChildInContainerBefore inserts a top-level fragment before ref,
// falling back to append when ref is missing.
func (h *HostConfig) InsertChildInContainerBefore(c *RootContainer, child, ref Node) {
	h.detach(child)
	unlinkFromContainer(c, child)
	idx := indexOf(c.children, ref)
	if idx < 0 {
		log.Printf("reim: InsertChildInContainerBefore: reference node %d not found at root, appending", ref.ID())
		c.children = append(c.children, child)
		return
	}
	c.children = append(c.children, nil)
	copy(c.children[idx+1:], c.children[idx:])
	c.children[idx] = child
}

// RemoveChildFromContainer removes a top-level fragment and destroys it.
// A missing child logs and leaves the root children unchanged.
func (h *HostConfig) RemoveChildFromContainer(c *RootContainer, child Node) {
	idx := indexOf(c.children, child)
	if idx < 0 {
		log.Printf("reim: RemoveChildFromContainer: node %d not found at root", child.ID())
		return
	}
	c.children = append(c.children[:idx], c.children[idx+1:]...)
	child.setParent(nil)
	child.destroy()
}

// PreparePropsUpdate reports whether node needs a prop commit. Equality is
// shallow and intentionally coarse: a replaced callback closure counts as a
// change even when nothing else moved, trading redundant updates for never
// missing a real one.
func (h *HostConfig) PreparePropsUpdate(node *ElementNode, oldProps, newProps *Props) bool {
	return !ShallowEqual(oldProps, newProps)
}

// CommitPropsUpdate replaces the node's prop bag wholesale.
func (h *HostConfig) CommitPropsUpdate(node *ElementNode, newProps *Props) {
	if newProps == nil {
		newProps = NewProps()
	}
	node.props = newProps
}

// CommitTextUpdate replaces a text node's content in place.
func (h *HostConfig) CommitTextUpdate(node *TextNode, text string) {
	node.text = text
}

// ClearContainer detaches and destroys all root children.
func (h *HostConfig) ClearContainer(c *RootContainer) {
	for _, child := range c.children {
		child.setParent(nil)
		child.destroy()
	}
	c.children = nil
}

// OnCommitComplete publishes the new root-children snapshot for the render
// pass. The engine must call this exactly once per commit, after all
// structural mutations; publication is what keeps a half-finished commit
// invisible to the renderer.
func (h *HostConfig) OnCommitComplete(c *RootContainer) {
	c.publish()
}

// detach removes child from its current parent, or from the root container
// when it sits at top level, without destroying it. Used when the engine
// moves a node via append/insert.
func (h *HostConfig) detach(child Node) {
	parent := child.Parent()
	if parent == nil {
		unlinkFromContainer(h.container, child)
		return
	}
	idx := indexOf(parent.children, child)
	if idx >= 0 {
		parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	}
	child.setParent(nil)
}

// unlinkFromContainer removes an existing root-level occurrence of child
// without destroying it. Reorders at the root arrive as plain inserts, the
// same way a DOM insertBefore implicitly moves an attached node.
func unlinkFromContainer(c *RootContainer, child Node) {
	idx := indexOf(c.children, child)
	if idx >= 0 {
		c.children = append(c.children[:idx], c.children[idx+1:]...)
	}
}

func indexOf(nodes []Node, target Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}
