package opengl

import (
	"fmt"
	stdmath "math"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/scene"
)

// SkyRenderer draws the procedural sky as a single full-screen triangle,
// reading the live sky material and sun every frame.
type SkyRenderer struct {
	vao     uint32
	program uint32
	loc     map[string]int32
}

// View is the camera the sky is seen through.
type View struct {
	Forward, Right, Up math.Vec3
	FovY               float32 // radians
	Aspect             float32
}

// ViewFromTransform builds a view looking along t's forward axis.
func ViewFromTransform(t core.Transform, fovY, aspect float32) View {
	return View{Forward: t.GetForward(), Right: t.GetRight(), Up: t.GetUp(), FovY: fovY, Aspect: aspect}
}

// SkyUniforms are the shader inputs derived from a sky material and sun.
type SkyUniforms struct {
	Tint        core.Color
	Ground      core.Color
	Exposure    float32
	SunSize     float32
	SunConverge float32
	Atmosphere  float32
	SunDir      math.Vec3 // direction the sunlight travels
	SunColor    core.Color
}

// defaultSky fills in parameters the live material does not define.
var defaultSky = scene.NewProceduralSky("fallback")

// UniformsFor reads m and sun. Missing material parameters fall back to
// the procedural defaults; a nil sun leaves the disc dark.
func UniformsFor(m *scene.SkyMaterial, sun *scene.DirectionalLight) SkyUniforms {
	color := func(name string) core.Color {
		if m != nil && m.HasProperty(name) {
			return m.Color(name)
		}
		return defaultSky.Color(name)
	}
	float := func(name string) float32 {
		if m != nil && m.HasProperty(name) {
			return m.Float(name)
		}
		return defaultSky.Float(name)
	}

	u := SkyUniforms{
		Tint:        color(scene.SkyTint),
		Ground:      color(scene.SkyGroundColor),
		Exposure:    float(scene.SkyExposure),
		SunSize:     float(scene.SkySunSize),
		SunConverge: float(scene.SkySunSizeConverge),
		Atmosphere:  float(scene.SkyAtmosphere),
		SunDir:      math.Vec3{Y: -1},
		SunColor:    core.ColorBlack,
	}
	if sun != nil {
		u.SunDir = sun.Direction()
		u.SunColor = sun.Radiance()
	}
	return u
}

// ClearColor is the sky colour at the horizon, used for the framebuffer
// clear so anything the triangle misses blends in.
func (u SkyUniforms) ClearColor() core.Color {
	c := u.Tint.Lerp(core.ColorWhite, math.Clamp01(0.5*u.Atmosphere)).Scale(u.Exposure)
	c.A = 1
	return c
}

const skyVertSrc = `
#version 410 core
out vec2 ndc;

void main() {
    // one triangle covering the screen: (-1,-1) (3,-1) (-1,3)
    vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2) * 2.0 - 1.0;
    ndc = p;
    gl_Position = vec4(p, 1.0, 1.0);
}
` + "\x00"

const skyFragSrc = `
#version 410 core
in vec2 ndc;
out vec4 outColor;

uniform vec3 camForward;
uniform vec3 camRight;
uniform vec3 camUp;
uniform vec2 tanHalf;

uniform vec3  tint;
uniform vec3  ground;
uniform float exposure;
uniform float sunSize;
uniform float sunConverge;
uniform float atmosphere;
uniform vec3  sunDir;
uniform vec3  sunColor;

void main() {
    vec3 dir = normalize(camForward + ndc.x * tanHalf.x * camRight + ndc.y * tanHalf.y * camUp);

    vec3 horizon = mix(tint, vec3(1.0), clamp(0.5 * atmosphere, 0.0, 1.0));
    vec3 color;
    if (dir.y >= 0.0) {
        color = mix(horizon, tint, pow(dir.y, 1.0 / max(atmosphere, 0.05)));
    } else {
        color = mix(horizon, ground, min(-dir.y * 3.0, 1.0));
    }
    color *= exposure;

    float cosA = dot(dir, -normalize(sunDir));
    float disc = smoothstep(1.0 - sunSize, 1.0, cosA);
    color += sunColor * pow(disc, max(sunConverge, 1.0)) * step(-0.05, -sunDir.y);

    outColor = vec4(color, 1.0);
}
` + "\x00"

var skyUniformNames = []string{
	"camForward", "camRight", "camUp", "tanHalf",
	"tint", "ground", "exposure", "sunSize", "sunConverge", "atmosphere", "sunDir", "sunColor",
}

// NewSkyRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewSkyRenderer() (*SkyRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(skyVertSrc, skyFragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	r := &SkyRenderer{program: prog, loc: make(map[string]int32, len(skyUniformNames))}
	for _, name := range skyUniformNames {
		r.loc[name] = gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}
	// Core profile needs a bound VAO even with no vertex attributes.
	gl.GenVertexArrays(1, &r.vao)
	return r, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *SkyRenderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame clears the framebuffer with the given colour.
func (r *SkyRenderer) BeginFrame(c core.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the sky for u as seen through v.
func (r *SkyRenderer) Draw(u SkyUniforms, v View) {
	gl.UseProgram(r.program)

	setVec3(r.loc["camForward"], v.Forward)
	setVec3(r.loc["camRight"], v.Right)
	setVec3(r.loc["camUp"], v.Up)
	tanY := float32(stdmath.Tan(float64(v.FovY) / 2))
	gl.Uniform2f(r.loc["tanHalf"], tanY*v.Aspect, tanY)

	setColor(r.loc["tint"], u.Tint)
	setColor(r.loc["ground"], u.Ground)
	gl.Uniform1f(r.loc["exposure"], u.Exposure)
	gl.Uniform1f(r.loc["sunSize"], u.SunSize)
	gl.Uniform1f(r.loc["sunConverge"], u.SunConverge)
	gl.Uniform1f(r.loc["atmosphere"], u.Atmosphere)
	setVec3(r.loc["sunDir"], u.SunDir)
	setColor(r.loc["sunColor"], u.SunColor)

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases all GPU resources.
func (r *SkyRenderer) Destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
}

func setVec3(loc int32, v math.Vec3) { gl.Uniform3f(loc, v.X, v.Y, v.Z) }

func setColor(loc int32, c core.Color) { gl.Uniform3f(loc, c.R, c.G, c.B) }

// ── shader helpers ────────────────────────────────────────────────────────────

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
