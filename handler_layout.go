package reim

import "strconv"

func init() {
	registerHandler("group", renderGroup)
	registerHandler("child", renderChild)
	registerHandler("collapsing-header", renderCollapsingHeader)
	registerHandler("tree-node", renderTreeNode)
	registerHandler("separator", renderSeparator)
	registerHandler("spacing", renderSpacing)
	registerHandler("same-line", renderSameLine)
	registerHandler("indent", renderIndent)
}

func renderGroup(r *Renderer, n *ElementNode) {
	r.tk.BeginGroup()
	defer r.tk.EndGroup()
	r.renderChildren(n)
}

// renderChild opens a scrollable sub-region. EndChild is issued on every
// path: the toolkit requires the pair balanced even when the region is
// scrolled out of view.
func renderChild(r *Renderer, n *ElementNode) {
	p := n.Props()
	size := sizeVec(n)
	border := p.Bool("border", false)

	visible := r.tk.BeginChild(strconv.FormatUint(uint64(n.ID()), 10), size, border)
	defer r.tk.EndChild()
	if visible {
		r.renderChildren(n)
	}
}

func renderCollapsingHeader(r *Renderer, n *ElementNode) {
	if r.tk.CollapsingHeader(n.Props().String("label", "")) {
		r.renderChildren(n)
	}
}

// renderTreeNode follows the toolkit's asymmetric contract: TreePop is
// called only when TreeNode returned open.
func renderTreeNode(r *Renderer, n *ElementNode) {
	if r.tk.TreeNode(n.Props().String("label", "")) {
		defer r.tk.TreePop()
		r.renderChildren(n)
	}
}

func renderSeparator(r *Renderer, n *ElementNode) {
	r.tk.Separator()
}

func renderSpacing(r *Renderer, n *ElementNode) {
	r.tk.Spacing()
}

// renderSameLine keeps the next widget on the current line. A negative
// spacing means "use the toolkit's default item spacing".
func renderSameLine(r *Renderer, n *ElementNode) {
	offset := float32(finiteNumber(n, "offset", 0))
	spacing := float32(finiteNumber(n, "spacing", -1))
	r.tk.SameLine(offset, spacing)
}

func renderIndent(r *Renderer, n *ElementNode) {
	width := float32(finiteNumber(n, "width", 0))
	r.tk.Indent(width)
	defer r.tk.Unindent(width)
	r.renderChildren(n)
}
