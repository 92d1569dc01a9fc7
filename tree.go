package planeshift

import "fmt"

func (c *LayerContext) allocID() LayerID {
	id := c.nextID
	c.nextID++
	return id
}

// AddContainerLayer creates a detached container layer with zero bounds.
func (c *LayerContext) AddContainerLayer() LayerID {
	c.checkTransaction("AddContainerLayer")
	id := c.allocID()
	c.container.Add(id, LayerContainerInfo{})
	c.geometry.Add(id, LayerGeometryInfo{})
	c.backend.AddContainerLayer(id)
	return id
}

// AddSurfaceLayer creates a detached surface layer with zero bounds and no
// options.
func (c *LayerContext) AddSurfaceLayer() LayerID {
	c.checkTransaction("AddSurfaceLayer")
	id := c.allocID()
	c.surface.Add(id, LayerSurfaceInfo{})
	c.geometry.Add(id, LayerGeometryInfo{})
	c.backend.AddSurfaceLayer(id)
	return id
}

// InsertBefore links newChild under parent immediately before reference.
// A reference of NoLayer appends newChild as the last child.
//
// It panics if parent is not a container, if newChild is already attached
// or is an ancestor of parent, or if reference is not a child of parent.
func (c *LayerContext) InsertBefore(parent, newChild, reference LayerID) {
	const op = "InsertBefore"
	c.checkTransaction(op)
	c.checkLayer(op, newChild)
	if !c.container.Has(parent) {
		panic(fmt.Sprintf("planeshift: %s: layer %d is not a container", op, parent))
	}
	if c.tree.Has(newChild) {
		panic(fmt.Sprintf("planeshift: %s: layer %d is already attached", op, newChild))
	}
	for p := parent; ; {
		if p == newChild {
			panic(fmt.Sprintf("planeshift: %s: layer %d is an ancestor of %d", op, newChild, parent))
		}
		info, ok := c.tree.Get(p)
		if !ok || info.Parent.IsNativeHost() {
			break
		}
		p = info.Parent.Layer
	}

	var prev LayerID
	if reference == NoLayer {
		prev = c.container.Must(parent).LastChild
	} else {
		ref, ok := c.tree.Get(reference)
		if !ok || ref.Parent != ParentLayer(parent) {
			panic(fmt.Sprintf("planeshift: %s: layer %d is not a child of %d", op, reference, parent))
		}
		prev = ref.PrevSibling
	}

	c.tree.Add(newChild, LayerTreeInfo{
		Parent:      ParentLayer(parent),
		PrevSibling: prev,
		NextSibling: reference,
	})
	list := c.container.At(parent)
	if prev != NoLayer {
		c.tree.At(prev).NextSibling = newChild
	} else {
		list.FirstChild = newChild
	}
	if reference != NoLayer {
		c.tree.At(reference).PrevSibling = newChild
	} else {
		list.LastChild = newChild
	}

	c.backend.InsertBefore(parent, newChild, reference, c.Components())
}

// AppendChild links child under parent as its last child.
func (c *LayerContext) AppendChild(parent, child LayerID) {
	c.InsertBefore(parent, child, NoLayer)
}

// HostLayer anchors a detached layer to host, a backend-specific native
// surface. Any number of layers may be hosted.
func (c *LayerContext) HostLayer(host Host, layer LayerID) {
	const op = "HostLayer"
	c.checkTransaction(op)
	c.attachToHost(op, layer)
	c.backend.HostLayer(layer, host, c.Components())
}

// HostLayerInWindow anchors a detached layer to the connection's window.
// On error the layer stays detached.
func (c *LayerContext) HostLayerInWindow(layer LayerID) error {
	const op = "HostLayerInWindow"
	c.checkTransaction(op)
	c.attachToHost(op, layer)
	if err := c.backend.HostLayerInWindow(layer, c.Components()); err != nil {
		c.tree.Remove(layer)
		return err
	}
	return nil
}

func (c *LayerContext) attachToHost(op string, layer LayerID) {
	c.checkLayer(op, layer)
	if c.tree.Has(layer) {
		panic(fmt.Sprintf("planeshift: %s: layer %d is already attached", op, layer))
	}
	c.tree.Add(layer, LayerTreeInfo{Parent: NativeHost})
}

// RemoveFromParent detaches layer from its container or host. Its other
// components, including any children, are kept.
func (c *LayerContext) RemoveFromParent(layer LayerID) {
	const op = "RemoveFromParent"
	c.checkTransaction(op)
	info, ok := c.tree.Get(layer)
	if !ok {
		panic(fmt.Sprintf("planeshift: %s: layer %d is not attached", op, layer))
	}

	if info.Parent.IsNativeHost() {
		c.backend.UnhostLayer(layer, c.Components())
		c.tree.Remove(layer)
		return
	}

	parent := info.Parent.Layer
	c.backend.RemoveFromSuperlayer(layer, parent, c.Components())

	list := c.container.At(parent)
	if info.PrevSibling != NoLayer {
		c.tree.At(info.PrevSibling).NextSibling = info.NextSibling
	} else {
		list.FirstChild = info.NextSibling
	}
	if info.NextSibling != NoLayer {
		c.tree.At(info.NextSibling).PrevSibling = info.PrevSibling
	} else {
		list.LastChild = info.PrevSibling
	}
	c.tree.Remove(layer)
}

// DeleteLayer destroys a detached layer and retires its id.
//
// It panics if the layer is still attached, or if it is a container that
// still has children.
func (c *LayerContext) DeleteLayer(layer LayerID) {
	const op = "DeleteLayer"
	c.checkTransaction(op)
	c.checkLayer(op, layer)
	if c.tree.Has(layer) {
		panic(fmt.Sprintf("planeshift: %s: layer %d is still attached", op, layer))
	}
	if list, ok := c.container.Get(layer); ok && list.FirstChild != NoLayer {
		panic(fmt.Sprintf("planeshift: %s: container %d still has children", op, layer))
	}

	c.container.RemoveIfPresent(layer)
	c.surface.RemoveIfPresent(layer)
	c.geometry.Remove(layer)
	c.backend.DeleteLayer(layer)
}

// SetLayerBounds replaces the parent-relative bounds of layer.
func (c *LayerContext) SetLayerBounds(layer LayerID, bounds Rect) {
	const op = "SetLayerBounds"
	c.checkTransaction(op)
	c.checkLayer(op, layer)
	g := c.geometry.At(layer)
	old := g.Bounds
	g.Bounds = bounds
	c.backend.SetLayerBounds(layer, old, c.Components())
}

// SetLayerSurfaceOptions replaces the options of a surface layer.
func (c *LayerContext) SetLayerSurfaceOptions(layer LayerID, options SurfaceOptions) {
	const op = "SetLayerSurfaceOptions"
	c.checkTransaction(op)
	c.checkLayer(op, layer)
	s := c.surface.GetMut(layer)
	if s == nil {
		panic(fmt.Sprintf("planeshift: %s: layer %d is not a surface", op, layer))
	}
	s.Options = options
	c.backend.SetLayerSurfaceOptions(layer, c.Components())
}
