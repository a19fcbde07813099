package opengl

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"bus-viewer/scene"
)

const overlayVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 2) in vec2 inUV;

out vec2 fragUV;

void main() {
    gl_Position = vec4(inPosition.xy, 0.0, 1.0);
    fragUV = inUV;
}
` + "\x00"

const overlayFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D overlayTex;

void main() {
    outColor = texture(overlayTex, fragUV);
}
` + "\x00"

// Overlay is a full-screen RGBA texture blended over the scene. The image is
// re-uploaded every frame it is drawn.
type Overlay struct {
	program uint32
	texLoc  int32
	tex     uint32
	width   int
	height  int
	quad    *scene.Mesh
}

func newOverlay() (*Overlay, error) {
	prog, err := newProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		return nil, fmt.Errorf("overlay shader compile: %w", err)
	}
	ov := &Overlay{
		program: prog,
		texLoc:  uniformLoc(prog, "overlayTex"),
		quad:    scene.CreateScreenQuad(),
	}

	gl.GenTextures(1, &ov.tex)
	gl.BindTexture(gl.TEXTURE_2D, ov.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return ov, nil
}

// upload copies img into the overlay texture, reallocating it when the size
// changes.
func (ov *Overlay) upload(img *image.RGBA) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 || len(img.Pix) == 0 {
		return fmt.Errorf("overlay image is empty")
	}
	if img.Stride != 4*w {
		return fmt.Errorf("overlay image stride %d does not match width %d", img.Stride, w)
	}

	gl.BindTexture(gl.TEXTURE_2D, ov.tex)
	if w != ov.width || h != ov.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
		ov.width, ov.height = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (ov *Overlay) draw(gpu *GPUMesh) {
	if gpu == nil {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	// image.RGBA is alpha-premultiplied.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(ov.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, ov.tex)
	gl.Uniform1i(ov.texLoc, 0)

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (ov *Overlay) destroy() {
	gl.DeleteTextures(1, &ov.tex)
	gl.DeleteProgram(ov.program)
}
