package opengl

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"bus-viewer/core"
	"bus-viewer/lighting"
	"bus-viewer/math"
	"bus-viewer/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Lighting uniforms: directional
	dirDirectionLoc int32
	dirColorLoc     int32

	// Lighting uniforms: point lights
	pointPosLoc   [lighting.NumPointLights]int32
	pointColorLoc [lighting.NumPointLights]int32

	// Lighting uniforms: spot light
	spotPosLoc    int32
	spotDirLoc    int32
	spotColorLoc  int32
	spotCutoffLoc int32

	// Model constants
	ambientStrengthLoc  int32
	specularStrengthLoc int32
	shininessLoc        int32
	k1Loc               int32
	k2Loc               int32
	emissiveScaleLoc    int32
	enabledLoc          [6]int32

	// Camera uniform (for specular)
	viewPosLoc int32

	// Material uniforms
	matAlbedoLoc           int32
	matSpecularLoc         int32
	matShininessLoc        int32
	matEmissiveLoc         int32
	matEmissiveStrengthLoc int32

	// HUD overlay (nil until the first DrawOverlay call)
	overlay *Overlay

	log zerolog.Logger

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// vertex shader: MVP + model transform, world-space position and normal to fragment.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;
out vec3 fragWorldPos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    gl_Position   = mvp * vec4(inPosition, 1.0);
    fragNormal    = mat3(transpose(inverse(model))) * inNormal;
    fragWorldPos  = worldPos.xyz;
}
` + "\x00"

// fragment shader: Phong with one directional, four point and one spot light.
// Each light type and each reflection component can be switched off; emission
// is added after lighting and ignores the switches.
const fragSrc = `
#version 410 core
#define NUM_POINT_LIGHTS 4

in vec3 fragNormal;
in vec3 fragWorldPos;

out vec4 outColor;

uniform vec3 dirDirection;
uniform vec3 dirColor;

uniform vec3 pointPos[NUM_POINT_LIGHTS];
uniform vec3 pointColor[NUM_POINT_LIGHTS];

uniform vec3  spotPos;
uniform vec3  spotDir;
uniform vec3  spotColor;
uniform float spotCosCutoff;

uniform float ambientStrength;
uniform float specularStrength;
uniform float shininess;
uniform float k1;
uniform float k2;
uniform float emissiveScale;

// directional, point, spot, ambient, diffuse, specular
uniform int enabled[6];

uniform vec3 viewPos;

uniform vec3  matAlbedo;
uniform float matSpecular;
uniform float matShininess;
uniform vec3  matEmissive;
uniform float matEmissiveStrength;

vec3 phong(vec3 n, vec3 v, vec3 l, vec3 color, float specStrength, float shin) {
    float k = 0.0;
    if (enabled[3] == 1) {
        k += ambientStrength;
    }
    if (enabled[4] == 1) {
        k += max(dot(n, l), 0.0);
    }
    if (enabled[5] == 1) {
        vec3 r = reflect(-l, n);
        k += pow(max(dot(v, r), 0.0), shin) * specStrength;
    }
    return color * k;
}

float attenuation(float d) {
    return 1.0 / (1.0 + k1 * d + k2 * d * d);
}

void main() {
    vec3 n = normalize(fragNormal);
    vec3 v = normalize(viewPos - fragWorldPos);
    float shin = matShininess > 0.0 ? matShininess : shininess;
    float specStrength = specularStrength * matSpecular;

    vec3 light = vec3(0.0);
    if (enabled[0] == 1) {
        light += phong(n, v, normalize(-dirDirection), dirColor, specStrength, shin);
    }
    if (enabled[1] == 1) {
        for (int i = 0; i < NUM_POINT_LIGHTS; i++) {
            vec3 toLight = pointPos[i] - fragWorldPos;
            vec3 l = normalize(toLight);
            light += phong(n, v, l, pointColor[i], specStrength, shin) * attenuation(length(toLight));
        }
    }
    if (enabled[2] == 1) {
        vec3 toLight = spotPos - fragWorldPos;
        vec3 l = normalize(toLight);
        if (dot(l, normalize(-spotDir)) > spotCosCutoff) {
            light += phong(n, v, l, spotColor, specStrength, shin) * attenuation(length(toLight));
        }
    }

    vec3 emission = matEmissive * matEmissiveStrength * emissiveScale;
    outColor = vec4(light * matAlbedo + emission, 1.0);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer(log zerolog.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Info().Str("version", version).Msg("OpenGL initialized")

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// The door and fan blades are seen from both sides.
	gl.Disable(gl.CULL_FACE)

	r := &Renderer{
		program: prog,

		mvpLoc:   uniformLoc(prog, "mvp"),
		modelLoc: uniformLoc(prog, "model"),

		dirDirectionLoc: uniformLoc(prog, "dirDirection"),
		dirColorLoc:     uniformLoc(prog, "dirColor"),

		spotPosLoc:    uniformLoc(prog, "spotPos"),
		spotDirLoc:    uniformLoc(prog, "spotDir"),
		spotColorLoc:  uniformLoc(prog, "spotColor"),
		spotCutoffLoc: uniformLoc(prog, "spotCosCutoff"),

		ambientStrengthLoc:  uniformLoc(prog, "ambientStrength"),
		specularStrengthLoc: uniformLoc(prog, "specularStrength"),
		shininessLoc:        uniformLoc(prog, "shininess"),
		k1Loc:               uniformLoc(prog, "k1"),
		k2Loc:               uniformLoc(prog, "k2"),
		emissiveScaleLoc:    uniformLoc(prog, "emissiveScale"),

		viewPosLoc: uniformLoc(prog, "viewPos"),

		matAlbedoLoc:           uniformLoc(prog, "matAlbedo"),
		matSpecularLoc:         uniformLoc(prog, "matSpecular"),
		matShininessLoc:        uniformLoc(prog, "matShininess"),
		matEmissiveLoc:         uniformLoc(prog, "matEmissive"),
		matEmissiveStrengthLoc: uniformLoc(prog, "matEmissiveStrength"),

		log: log,

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	// Resolve per-element uniform locations
	for i := 0; i < lighting.NumPointLights; i++ {
		r.pointPosLoc[i] = uniformLoc(prog, fmt.Sprintf("pointPos[%d]", i))
		r.pointColorLoc[i] = uniformLoc(prog, fmt.Sprintf("pointColor[%d]", i))
	}
	for i := range r.enabledLoc {
		r.enabledLoc[i] = uniformLoc(prog, fmt.Sprintf("enabled[%d]", i))
	}

	return r, nil
}

// ── Frame ─────────────────────────────────────────────────────────────────────

// BeginFrame clears the whole framebuffer and uploads the light rig. The
// uniforms stay bound for every region drawn this frame.
func (r *Renderer) BeginFrame(clear core.Color, width, height int, lights lighting.Uniforms) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)

	setVec3(r.dirDirectionLoc, lights.DirDirection)
	setVec3(r.dirColorLoc, lights.DirColor)

	for i := 0; i < lighting.NumPointLights; i++ {
		setVec3(r.pointPosLoc[i], lights.PointPositions[i])
		setVec3(r.pointColorLoc[i], lights.PointColors[i])
	}

	setVec3(r.spotPosLoc, lights.SpotPosition)
	setVec3(r.spotDirLoc, lights.SpotDirection)
	setVec3(r.spotColorLoc, lights.SpotColor)
	gl.Uniform1f(r.spotCutoffLoc, lights.SpotCosCutoff)

	gl.Uniform1f(r.ambientStrengthLoc, lights.AmbientStrength)
	gl.Uniform1f(r.specularStrengthLoc, lights.SpecularStrength)
	gl.Uniform1f(r.shininessLoc, lights.Shininess)
	gl.Uniform1f(r.k1Loc, lights.K1)
	gl.Uniform1f(r.k2Loc, lights.K2)
	gl.Uniform1f(r.emissiveScaleLoc, lights.EmissiveScale)

	for i, on := range lights.Enabled {
		gl.Uniform1i(r.enabledLoc[i], on)
	}
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// BeginRegion restricts drawing to rect and sets the eye for specular
// highlights. Scissoring keeps the depth clear inside the region.
func (r *Renderer) BeginRegion(rect core.Rect, eye math.Vec3) {
	gl.Viewport(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height))
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height))
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.viewPosLoc, eye.X, eye.Y, eye.Z)
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// defaultMaterial shades draws that carry no material.
var defaultMaterial = scene.NewMaterial("default", core.ColorWhite)

// DrawMesh draws a mesh with the given MVP and model matrices and material.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4, mat *scene.Material) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(r.modelLoc, 1, false, model.Ptr())

	if mat == nil {
		mat = defaultMaterial
	}
	r.applyMaterial(mat)

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) applyMaterial(mat *scene.Material) {
	gl.Uniform3f(r.matAlbedoLoc, mat.Albedo.R, mat.Albedo.G, mat.Albedo.B)
	gl.Uniform1f(r.matSpecularLoc, mat.Specular)
	gl.Uniform1f(r.matShininessLoc, mat.Shininess)
	if !mat.IsEmissive() {
		gl.Uniform1f(r.matEmissiveStrengthLoc, 0)
		return
	}
	gl.Uniform3f(r.matEmissiveLoc, mat.Emissive.R, mat.Emissive.G, mat.Emissive.B)
	gl.Uniform1f(r.matEmissiveStrengthLoc, mat.EmissiveStrength)
}

// ── Overlay ───────────────────────────────────────────────────────────────────

// DrawOverlay blends img over the full framebuffer. The overlay program and
// texture are created on first use.
func (r *Renderer) DrawOverlay(img *image.RGBA) {
	if r.overlay == nil {
		ov, err := newOverlay()
		if err != nil {
			r.log.Error().Err(err).Msg("overlay init")
			return
		}
		r.overlay = ov
	}
	if err := r.overlay.upload(img); err != nil {
		r.log.Warn().Err(err).Msg("overlay upload")
		return
	}

	gl.Viewport(0, 0, int32(img.Rect.Dx()), int32(img.Rect.Dy()))
	r.overlay.draw(r.ensureUploaded(r.overlay.quad))
}

// ReleaseMesh frees the GPU buffers of a mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	if r.overlay != nil {
		r.overlay.destroy()
	}
	gl.DeleteProgram(r.program)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

func uniformLoc(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func setVec3(loc int32, v [3]float32) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
