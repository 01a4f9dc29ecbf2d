package geometry

import "github.com/df07/go-radiometer/pkg/core"

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes of a leaf node (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Copy so partitioning never reorders the caller's slice
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := core.EmptyAABB()
	for _, shape := range shapes {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	leaf := &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	if len(shapes) <= leafThreshold {
		return leaf
	}

	axis := boundingBox.LongestAxis()
	minVal, maxVal := boundingBox.Min.Component(axis), boundingBox.Max.Component(axis)
	if maxVal <= minVal {
		return leaf
	}
	splitPos := (minVal + maxVal) * 0.5

	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		if shape.BoundingBox().Center().Component(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}

	// Ensure we don't create empty partitions
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return leaf
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// Hit returns the closest intersection in [tMin, tMax] and the shape hit
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, Shape, bool) {
	if bvh.Root == nil {
		return nil, nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, Shape, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, nil, false
	}

	var closest *core.SurfaceInteraction
	var closestShape Shape
	closestSoFar := tMax

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if si, ok := shape.Hit(ray, tMin, closestSoFar); ok {
				closest, closestShape, closestSoFar = si, shape, si.T
			}
		}
		return closest, closestShape, closest != nil
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if si, shape, ok := bvh.hitNode(child, ray, tMin, closestSoFar); ok {
			closest, closestShape, closestSoFar = si, shape, si.T
		}
	}
	return closest, closestShape, closest != nil
}

// BoundingBox returns the overall bounding box, invalid when empty
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.BoundingBox
}

// Depth returns the number of levels in the tree
func (bvh *BVH) Depth() int {
	return nodeDepth(bvh.Root)
}

func nodeDepth(node *BVHNode) int {
	if node == nil {
		return 0
	}
	return 1 + max(nodeDepth(node.Left), nodeDepth(node.Right))
}
