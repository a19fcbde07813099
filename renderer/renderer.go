package renderer

import (
	"errors"
	"fmt"
	"image"

	"bus-viewer/core"
	"bus-viewer/lighting"
	"bus-viewer/math"
	"bus-viewer/scene"
	"bus-viewer/sim"
)

// ErrUnsupportedViewportCount is returned by Partition for anything but 1 or 4.
var ErrUnsupportedViewportCount = errors.New("unsupported viewport count")

const (
	FieldOfView float32 = 45
	NearPlane   float32 = 0.1
	FarPlane    float32 = 300
)

// ClearColor is the sky behind the scene.
var ClearColor = core.RGB(0.80, 0.90, 0.95)

// Backend is the drawing surface the engine drives. The OpenGL implementation
// lives in internal/opengl.
type Backend interface {
	// BeginFrame clears the framebuffer and uploads the lighting state that
	// every region of the frame shares.
	BeginFrame(clear core.Color, width, height int, lights lighting.Uniforms)
	// BeginRegion restricts drawing to r and sets the eye used for specular.
	BeginRegion(r core.Rect, eye math.Vec3)
	DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4, mat *scene.Material)
	// DrawOverlay blends img over the whole framebuffer.
	DrawOverlay(img *image.RGBA)
	Destroy()
}

// Presenter shows the finished frame.
type Presenter interface {
	SwapBuffers()
}

// RenderEngine draws the viewer state into one or four viewports.
type RenderEngine struct {
	backend Backend
	screen  Presenter
	cube    *scene.Mesh

	width  int
	height int

	// FrustumCulling skips boxes outside a region's view volume. Off by
	// default so every region replays the full draw list.
	FrustumCulling bool

	lastRegions int
	lastDraws   int
	lastCulled  int
}

func NewRenderEngine(backend Backend, screen Presenter, width, height int) *RenderEngine {
	return &RenderEngine{
		backend: backend,
		screen:  screen,
		cube:    scene.CreateCube(1),
		width:   width,
		height:  height,
	}
}

// Resize records the new framebuffer size; regions and aspect ratios follow
// on the next frame.
func (re *RenderEngine) Resize(width, height int) {
	re.width = width
	re.height = height
}

func (re *RenderEngine) Size() (int, int) {
	return re.width, re.height
}

// RenderFrame draws every region of the current layout. The light rig is
// uploaded once and each region replays the same ordered draw list, ground
// first.
func (re *RenderEngine) RenderFrame(st *sim.State) error {
	regions, err := Partition(re.width, re.height, st.Viewports)
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	items := append([]scene.DrawItem{scene.Ground()}, st.DrawList()...)
	views := Viewpoints(st.Camera.Viewpoint(), st.Pose)

	re.backend.BeginFrame(ClearColor, re.width, re.height, st.Lights.Uniforms())

	draws, culled := 0, 0
	for i, region := range regions {
		if region.Empty() {
			continue
		}
		vp := views[i]
		view := vp.ViewMatrix()
		proj := Projection(region)
		viewProj := view.Mul(proj)
		frustum := scene.FrustumFromVP(viewProj)

		re.backend.BeginRegion(region, vp.Eye)
		for _, item := range items {
			if re.FrustumCulling && !scene.BoxBounds(item.Model).IntersectsFrustum(&frustum) {
				culled++
				continue
			}
			re.backend.DrawMesh(re.cube, item.Model.Mul(viewProj), item.Model, item.Material)
			draws++
		}
	}

	re.lastRegions = len(regions)
	re.lastDraws = draws
	re.lastCulled = culled
	return nil
}

// DrawOverlay composites a full-screen image, such as the HUD, after the
// scene.
func (re *RenderEngine) DrawOverlay(img *image.RGBA) {
	if img == nil {
		return
	}
	re.backend.DrawOverlay(img)
}

func (re *RenderEngine) Present() {
	re.screen.SwapBuffers()
}

// DrawStats reports the regions, cube draws and culled boxes of the last
// frame.
func (re *RenderEngine) DrawStats() (regions, draws, culled int) {
	return re.lastRegions, re.lastDraws, re.lastCulled
}

func (re *RenderEngine) Destroy() {
	re.backend.Destroy()
}

// Projection is the perspective used by every region, with the region's own
// aspect.
func Projection(r core.Rect) math.Mat4 {
	return math.Mat4Perspective(math.Radians(FieldOfView), r.Aspect(), NearPlane, FarPlane)
}
