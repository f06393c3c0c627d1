package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// BVHEntry is a shape together with its position in scene order
type BVHEntry struct {
	Shape Shape // Must implement Bounded
	Index int   // Scene insertion index, used to break ties
}

type bvhItem struct {
	BVHEntry
	box    core.AABB
	center core.Vec3
}

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	box         core.AABB
	left, right *bvhNode
	items       []bvhItem // Non-nil for leaf nodes only
}

// BVH is a Bounding Volume Hierarchy over bounded shapes. Its nearest-hit
// query returns exactly what a linear scan in index order would: the
// smallest t, and on equal t the smallest index.
type BVH struct {
	root *bvhNode
	size int
}

// NewBVH constructs a BVH. Entries whose shape is not Bounded are skipped.
func NewBVH(entries []BVHEntry) *BVH {
	items := make([]bvhItem, 0, len(entries))
	for _, e := range entries {
		bounded, ok := e.Shape.(Bounded)
		if !ok {
			continue
		}
		box := bounded.BoundingBox()
		items = append(items, bvhItem{BVHEntry: e, box: box, center: box.Center()})
	}

	if len(items) == 0 {
		return &BVH{}
	}
	return &BVH{root: buildBVH(items), size: len(items)}
}

// buildBVH recursively splits items at the median along the longest axis
func buildBVH(items []bvhItem) *bvhNode {
	box := items[0].box
	for _, item := range items[1:] {
		box = box.Union(item.box)
	}

	if len(items) <= leafThreshold {
		return &bvhNode{box: box, items: items}
	}

	axis := box.LongestAxis()
	sort.Slice(items, func(i, j int) bool {
		return items[i].center.Axis(axis) < items[j].center.Axis(axis)
	})

	mid := len(items) / 2
	return &bvhNode{
		box:   box,
		left:  buildBVH(items[:mid]),
		right: buildBVH(items[mid:]),
	}
}

// Size returns the number of shapes in the hierarchy
func (b *BVH) Size() int {
	return b.size
}

type bvhHit struct {
	t     float64
	index int
	shape Shape
}

// better reports whether a hit at (t, index) beats the current best
func (h *bvhHit) better(t float64, index int) bool {
	return h.shape == nil || t < h.t || (t == h.t && index < h.index)
}

// Hit returns the nearest intersection within the ray's range
func (b *BVH) Hit(ray core.Ray) (t float64, index int, shape Shape, ok bool) {
	if b.root == nil {
		return 0, -1, nil, false
	}

	best := bvhHit{t: ray.TMax, index: -1}
	b.hitNode(b.root, ray, &best)
	if best.shape == nil {
		return 0, -1, nil, false
	}
	return best.t, best.index, best.shape, true
}

func (b *BVH) hitNode(node *bvhNode, ray core.Ray, best *bvhHit) {
	// Equal t must still be visited for the index tie-break
	search := ray.WithMax(best.t)
	if !node.box.Hit(search) {
		return
	}

	if node.items != nil {
		for _, item := range node.items {
			t, ok := item.Shape.Intersect(ray.WithMax(best.t))
			if ok && best.better(t, item.Index) {
				best.t, best.index, best.shape = t, item.Index, item.Shape
			}
		}
		return
	}

	b.hitNode(node.left, ray, best)
	b.hitNode(node.right, ray, best)
}

// Any reports whether any shape intersects the ray within its range
func (b *BVH) Any(ray core.Ray) bool {
	return b.root != nil && b.anyNode(b.root, ray)
}

func (b *BVH) anyNode(node *bvhNode, ray core.Ray) bool {
	if !node.box.Hit(ray) {
		return false
	}
	if node.items != nil {
		for _, item := range node.items {
			if _, ok := item.Shape.Intersect(ray); ok {
				return true
			}
		}
		return false
	}
	return b.anyNode(node.left, ray) || b.anyNode(node.right, ray)
}
