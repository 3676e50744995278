package reim

import "log"

func init() {
	registerHandler("image", renderImage)
}

// imageRegistry caches toolkit textures by source path. Textures are owned
// by the registry (and ultimately the toolkit's image table), not by
// individual nodes, so two image nodes with the same src share one load and
// removing a node never invalidates the other's texture.
type imageRegistry struct {
	tk      Toolkit
	entries map[string]*imageEntry
}

type imageEntry struct {
	tex    TextureID
	size   Vec2
	failed bool
}

func newImageRegistry(tk Toolkit) *imageRegistry {
	return &imageRegistry{tk: tk, entries: make(map[string]*imageEntry)}
}

// lookup returns the cached entry for src, loading it on first use.
// A failed load is cached too, so a bad path logs once instead of retrying
// every frame.
func (reg *imageRegistry) lookup(src string) *imageEntry {
	if e, ok := reg.entries[src]; ok {
		return e
	}
	e := &imageEntry{}
	tex, size, err := reg.tk.LoadTexture(src)
	if err != nil {
		log.Printf("reim: failed to load image %q: %v", src, err)
		e.failed = true
	} else {
		e.tex = tex
		e.size = size
	}
	reg.entries[src] = e
	return e
}

// renderImage draws a loaded texture, defaulting to its natural size.
// A missing or unloadable src reserves the requested space with a dummy so
// surrounding layout stays stable.
func renderImage(r *Renderer, n *ElementNode) {
	src := n.Props().String("src", "")
	if src == "" {
		log.Printf("reim: node %d (image): missing src", n.ID())
		r.tk.Dummy(sizeVec(n))
		return
	}

	entry := r.images.lookup(src)
	if entry.failed {
		r.tk.Dummy(sizeVec(n))
		return
	}

	size := Vec2{
		X: float32(positiveSize(n, "width", float64(entry.size.X))),
		Y: float32(positiveSize(n, "height", float64(entry.size.Y))),
	}
	r.tk.Image(entry.tex, size)
}
