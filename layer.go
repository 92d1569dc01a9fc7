package planeshift

// LayerID is an opaque handle naming a layer within a LayerContext.
//
// IDs are allocated in increasing order starting at 1 and are never reused
// for the lifetime of the context. The zero value is NoLayer.
type LayerID uint32

// NoLayer is the absent layer. It is used for "no sibling", "no child" and,
// as an InsertBefore reference, "append at the end".
const NoLayer LayerID = 0

// IsValid reports whether id names a layer rather than NoLayer.
func (id LayerID) IsValid() bool {
	return id != NoLayer
}

// LayerParent is what a layer is attached to: either another layer or the
// native host surface.
type LayerParent struct {
	// Layer is the parent container. NoLayer means the native host.
	Layer LayerID
}

// NativeHost is the parent of a layer anchored to an externally owned
// presentation surface such as a window.
var NativeHost = LayerParent{}

// IsNativeHost reports whether the layer is hosted rather than parented.
func (p LayerParent) IsNativeHost() bool {
	return p.Layer == NoLayer
}

// ParentLayer returns a LayerParent naming layer.
func ParentLayer(layer LayerID) LayerParent {
	return LayerParent{Layer: layer}
}

// LayerTreeInfo links a layer into the tree. It exists only while the layer
// is attached to a container or hosted.
type LayerTreeInfo struct {
	Parent      LayerParent
	PrevSibling LayerID
	NextSibling LayerID
}

// LayerContainerInfo holds the child list of a container layer.
type LayerContainerInfo struct {
	FirstChild LayerID
	LastChild  LayerID
}

// LayerGeometryInfo holds a layer's bounds relative to its parent.
type LayerGeometryInfo struct {
	Bounds Rect
}

// LayerSurfaceInfo holds the options of a surface layer.
type LayerSurfaceInfo struct {
	Options SurfaceOptions
}

// SurfaceOptions describes the content of a surface layer.
type SurfaceOptions uint8

const (
	// SurfaceOpaque promises every pixel of the surface is fully opaque.
	SurfaceOpaque SurfaceOptions = 0x01

	// SurfaceDepth requests a depth buffer for the surface's framebuffer.
	SurfaceDepth SurfaceOptions = 0x02

	// SurfaceStencil requests a stencil buffer for the surface's framebuffer.
	SurfaceStencil SurfaceOptions = 0x04
)

// Has reports whether all bits of flag are set.
func (o SurfaceOptions) Has(flag SurfaceOptions) bool {
	return o&flag == flag
}

// NeedsDepthStencil reports whether the surface needs a depth/stencil
// attachment.
func (o SurfaceOptions) NeedsDepthStencil() bool {
	return o&(SurfaceDepth|SurfaceStencil) != 0
}

// String returns a readable form such as "OPAQUE|DEPTH".
func (o SurfaceOptions) String() string {
	if o == 0 {
		return "0"
	}
	var s string
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if o.Has(SurfaceOpaque) {
		add("OPAQUE")
	}
	if o.Has(SurfaceDepth) {
		add("DEPTH")
	}
	if o.Has(SurfaceStencil) {
		add("STENCIL")
	}
	return s
}

// Components is the read-only view of a context's component stores handed
// to backends.
type Components struct {
	Tree      LayerView[LayerTreeInfo]
	Container LayerView[LayerContainerInfo]
	Geometry  LayerView[LayerGeometryInfo]
	Surface   LayerView[LayerSurfaceInfo]
}

// Origin returns the parent-relative origin of layer, or the zero point if
// the layer has no geometry.
func (c Components) Origin(layer LayerID) Point {
	g, _ := c.Geometry.Get(layer)
	return g.Bounds.Origin
}

// HostedRoot walks up from layer to the layer attached to the native host.
// It returns false when the chain is broken by an unattached ancestor.
func (c Components) HostedRoot(layer LayerID) (LayerID, bool) {
	for {
		info, ok := c.Tree.Get(layer)
		if !ok {
			return NoLayer, false
		}
		if info.Parent.IsNativeHost() {
			return layer, true
		}
		layer = info.Parent.Layer
	}
}

// ScreenOrigin sums the origins of layer and all its ancestors, giving the
// layer's origin in host coordinates.
func (c Components) ScreenOrigin(layer LayerID) Point {
	var p Point
	for layer != NoLayer {
		p = p.Add(c.Origin(layer))
		info, ok := c.Tree.Get(layer)
		if !ok || info.Parent.IsNativeHost() {
			break
		}
		layer = info.Parent.Layer
	}
	return p
}
