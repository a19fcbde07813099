package renderer

import (
	"fmt"

	"bus-viewer/core"
	"bus-viewer/math"
	"bus-viewer/scene"
)

// Partition splits a width×height framebuffer into n regions. One region
// covers everything; four regions form a 2×2 grid ordered top-left,
// top-right, bottom-left, bottom-right. Rectangles use the OpenGL
// bottom-left origin, and odd sizes give the extra pixel to the right column
// and the top row.
func Partition(width, height, n int) ([]core.Rect, error) {
	switch n {
	case 1:
		return []core.Rect{{Width: width, Height: height}}, nil
	case 4:
		left := width / 2
		right := width - left
		bottom := height / 2
		top := height - bottom
		return []core.Rect{
			{X: 0, Y: bottom, Width: left, Height: top},
			{X: left, Y: bottom, Width: right, Height: top},
			{X: 0, Y: 0, Width: left, Height: bottom},
			{X: left, Y: 0, Width: right, Height: bottom},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedViewportCount, n)
	}
}

// Fixed auxiliary poses, in bus-local space.
var (
	topDownHeight = float32(30)

	frontEye    = math.NewVec3(0, 3, 14)
	frontTarget = math.NewVec3(0, 1, 0)

	CabinEye    = math.NewVec3(0.45, 1.25, 2.2)
	CabinTarget = math.NewVec3(0.45, 1.1, 6.0)
)

// TopDown looks straight down on the bus with the bus heading pointing up
// the screen.
func TopDown(pose scene.BusPose) scene.Viewpoint {
	return scene.Viewpoint{
		Eye:    pose.Position.Add(math.Vec3{Y: topDownHeight}),
		Target: pose.Position,
		Up:     pose.Heading(),
	}
}

// FrontOn stands ahead of the bus and looks back at it.
func FrontOn(pose scene.BusPose) scene.Viewpoint {
	master := scene.MasterTransform(pose)
	return scene.Viewpoint{
		Eye:    master.MulPoint(frontEye),
		Target: master.MulPoint(frontTarget),
		Up:     math.Vec3Up,
	}
}

// Cabin sits behind the windshield looking out along the heading.
func Cabin(pose scene.BusPose) scene.Viewpoint {
	master := scene.MasterTransform(pose)
	return scene.Viewpoint{
		Eye:    master.MulPoint(CabinEye),
		Target: master.MulPoint(CabinTarget),
		Up:     math.Vec3Up,
	}
}

// Viewpoints returns the pose of each region in Partition order: the
// interactive camera first, then the auxiliary views.
func Viewpoints(interactive scene.Viewpoint, pose scene.BusPose) [4]scene.Viewpoint {
	return [4]scene.Viewpoint{interactive, TopDown(pose), FrontOn(pose), Cabin(pose)}
}
