// Package gldevice draws meshes with OpenGL 4.1. It needs a current
// context with gl.Init already called, and must be used from the thread
// that owns that context.
package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"robosim/internal/draw"
	"robosim/internal/mesh"
)

const floatSize = 4

type buffers struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
}

// Device uploads each mesh and texture once and draws them from then on.
type Device struct {
	program uint32

	worldUniform    int32
	viewProjUniform int32
	texUniform      int32
	useTexUniform   int32

	meshes   map[*mesh.Mesh]*buffers
	textures map[draw.Texture]uint32

	log *zap.Logger
}

// New compiles the shader program and sets fixed pipeline state.
func New(log *zap.Logger) (*Device, error) {
	if log == nil {
		log = zap.NewNop()
	}

	program, err := newProgram(
		stage{"vertex", gl.VERTEX_SHADER, vertexShaderSource},
		stage{"fragment", gl.FRAGMENT_SHADER, fragmentShaderSource},
	)
	if err != nil {
		return nil, fmt.Errorf("gldevice: %w", err)
	}
	gl.UseProgram(program)

	d := &Device{
		program:         program,
		worldUniform:    gl.GetUniformLocation(program, gl.Str("world\x00")),
		viewProjUniform: gl.GetUniformLocation(program, gl.Str("viewProj\x00")),
		texUniform:      gl.GetUniformLocation(program, gl.Str("tex\x00")),
		useTexUniform:   gl.GetUniformLocation(program, gl.Str("useTexture\x00")),
		meshes:          make(map[*mesh.Mesh]*buffers),
		textures:        make(map[draw.Texture]uint32),
		log:             log,
	}
	gl.Uniform1i(d.texUniform, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CW)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)

	return d, nil
}

// Clear starts a new frame.
func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(d.program)
}

func (d *Device) DrawIndexed(m *mesh.Mesh) error {
	b, ok := d.meshes[m]
	if !ok {
		b = d.upload(m)
		d.meshes[m] = b
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(b.mode, b.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gldevice: draw %s: gl error 0x%x", m.Topology(), code)
	}
	return nil
}

func (d *Device) upload(m *mesh.Mesh) *buffers {
	vertices := m.Interleaved(make([]float32, 0, 8*m.VertexCount()))
	indices := m.Indices()

	b := &buffers{count: int32(len(indices)), mode: glMode(m.Topology())}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(8 * floatSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*floatSize))

	d.log.Debug("uploaded mesh",
		zap.Stringer("topology", m.Topology()),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", len(indices)))
	return b
}

func (d *Device) texture(t draw.Texture) (uint32, error) {
	if !cacheable(t) {
		return 0, fmt.Errorf("gldevice: texture type %T cannot be cached", t)
	}
	if id, ok := d.textures[t]; ok {
		return id, nil
	}

	rgba := toRGBA(t)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	d.textures[t] = id
	d.log.Debug("uploaded texture", zap.Int("width", rgba.Rect.Dx()), zap.Int("height", rgba.Rect.Dy()))
	return id, nil
}

func (d *Device) bind(world, viewProj mgl32.Mat4, tex draw.Texture) error {
	gl.UniformMatrix4fv(d.worldUniform, 1, false, &world[0])
	gl.UniformMatrix4fv(d.viewProjUniform, 1, false, &viewProj[0])
	if tex == nil || tex.Bounds().Empty() {
		gl.Uniform1i(d.useTexUniform, 0)
	} else {
		id, err := d.texture(tex)
		if err != nil {
			return err
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, id)
		gl.Uniform1i(d.useTexUniform, 1)
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gldevice: bind: gl error 0x%x", code)
	}
	return nil
}

// Close releases every buffer, texture and the program.
func (d *Device) Close() {
	for m, b := range d.meshes {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteBuffers(1, &b.ebo)
		delete(d.meshes, m)
	}
	for t, id := range d.textures {
		gl.DeleteTextures(1, &id)
		delete(d.textures, t)
	}
	gl.DeleteProgram(d.program)
}

// Effect pushes world, view-projection and texture to the program on Apply.
type Effect struct {
	*draw.BasicEffect
	dev *Device
}

func NewEffect(dev *Device) *Effect {
	return &Effect{BasicEffect: draw.NewBasicEffect(), dev: dev}
}

func (e *Effect) Apply(int) error {
	return e.dev.bind(e.World(), e.Projection.Mul4(e.View), e.Texture())
}
