// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"slices"

	"github.com/gogpu/planeshift"
)

// localRect is the whole of layer in its own coordinates.
func localRect(c planeshift.Components, layer planeshift.LayerID) planeshift.Rect {
	g, _ := c.Geometry.Get(layer)
	return planeshift.Rect{Size: g.Bounds.Size}
}

// invalidateLayer damages r, given in the coordinates of layer. The rect is
// translated through every ancestor up to and including the hosted root
// and merged into that root's pending rectangle. Damage to a layer that is
// not connected to a hosted root is dropped.
func (b *Backend) invalidateLayer(layer planeshift.LayerID, r planeshift.Rect, c planeshift.Components) {
	if r.IsEmpty() {
		return
	}
	for {
		info, ok := c.Tree.Get(layer)
		if !ok {
			return
		}
		r = r.Translate(c.Origin(layer))
		if info.Parent.IsNativeHost() {
			b.addDamage(layer, r)
			return
		}
		layer = info.Parent.Layer
	}
}

// addDamage merges r, in host coordinates, into the pending rectangle of
// root.
func (b *Backend) addDamage(root planeshift.LayerID, r planeshift.Rect) {
	if r.IsEmpty() || !slices.Contains(b.roots, root) {
		return
	}
	b.damage[root] = b.damage[root].Union(r)
}

// Damage returns the pending dirty rectangle of a hosted layer.
func (b *Backend) Damage(root planeshift.LayerID) (planeshift.Rect, bool) {
	r, ok := b.damage[root]
	return r, ok
}

// InsertBefore implements planeshift.Backend. The new child is damaged.
func (b *Backend) InsertBefore(_, newChild, _ planeshift.LayerID, c planeshift.Components) {
	b.invalidateLayer(newChild, localRect(c, newChild), c)
}

// RemoveFromSuperlayer implements planeshift.Backend. The area the layer
// covered in its parent is damaged.
func (b *Backend) RemoveFromSuperlayer(layer, parent planeshift.LayerID, c planeshift.Components) {
	b.invalidateLayer(parent, c.Geometry.Must(layer).Bounds, c)
}

// SetLayerBounds implements planeshift.Backend. Both the old area and the
// new one are damaged.
func (b *Backend) SetLayerBounds(layer planeshift.LayerID, oldBounds planeshift.Rect, c planeshift.Components) {
	if info, ok := c.Tree.Get(layer); ok {
		if info.Parent.IsNativeHost() {
			b.addDamage(layer, oldBounds)
		} else {
			b.invalidateLayer(info.Parent.Layer, oldBounds, c)
		}
	}
	b.invalidateLayer(layer, localRect(c, layer), c)
}

// SetLayerSurfaceOptions implements planeshift.Backend. Opacity decides
// the pass a layer is drawn in, so the whole layer is damaged.
func (b *Backend) SetLayerSurfaceOptions(layer planeshift.LayerID, c planeshift.Components) {
	b.invalidateLayer(layer, localRect(c, layer), c)
}
