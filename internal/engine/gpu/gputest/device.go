// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blackjack/internal/engine/gpu"
)

// Attribute describes one CreateAttribute call.
type Attribute struct {
	VertexArray gpu.VertexArray
	Location    uint32
	Size        int32
	Len         int
}

// Draw is one DrawIndexed call with the state it was issued under.
type Draw struct {
	VertexArray gpu.VertexArray
	Program     gpu.Program
	Count       int32
	Textures    map[uint32]gpu.Texture
	Uniforms    map[string]any
}

// Device records every call it receives. The zero value is not usable;
// call New.
type Device struct {
	// FailAt makes the n-th resource creation (1-based) fail. Zero disables.
	FailAt int
	// Missing lists uniform names reported as inactive (-1 location).
	Missing map[string]bool
	// LinkError makes CreateProgram fail.
	LinkError bool

	allocs int
	nextID uint32

	VertexArrays map[gpu.VertexArray]bool
	Buffers      map[gpu.Buffer]bool
	Textures     map[gpu.Texture]bool
	Programs     map[gpu.Program]bool

	Attributes     []Attribute
	IndexCounts    []int
	TextureUploads int
	TextureDeletes int
	BufferDeletes  int
	ArrayDeletes   int

	// Uniforms holds the last value written to every uniform, by name.
	Uniforms map[string]any
	// Writes counts every uniform write, by name.
	Writes map[string]int
	Draws  []Draw

	ViewportSize [2]int
	Clears       int
	Pixels       []byte

	names   map[gpu.Uniform]string
	locs    map[string]gpu.Uniform
	bound   gpu.VertexArray
	program gpu.Program
	units   map[uint32]gpu.Texture
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Missing:      make(map[string]bool),
		VertexArrays: make(map[gpu.VertexArray]bool),
		Buffers:      make(map[gpu.Buffer]bool),
		Textures:     make(map[gpu.Texture]bool),
		Programs:     make(map[gpu.Program]bool),
		Uniforms:     make(map[string]any),
		Writes:       make(map[string]int),
		names:        make(map[gpu.Uniform]string),
		locs:         make(map[string]gpu.Uniform),
		units:        make(map[uint32]gpu.Texture),
	}
}

func (d *Device) alloc(what string) (uint32, error) {
	d.allocs++
	if d.FailAt > 0 && d.allocs == d.FailAt {
		return 0, fmt.Errorf("%s: %w", what, gpu.ErrAlloc)
	}
	d.nextID++
	return d.nextID, nil
}

func (d *Device) CreateVertexArray() (gpu.VertexArray, error) {
	id, err := d.alloc("vertex array")
	if err != nil {
		return 0, err
	}
	vao := gpu.VertexArray(id)
	d.VertexArrays[vao] = true
	d.bound = vao
	return vao, nil
}

func (d *Device) BindVertexArray(vao gpu.VertexArray) { d.bound = vao }

func (d *Device) DeleteVertexArray(vao gpu.VertexArray) {
	delete(d.VertexArrays, vao)
	d.ArrayDeletes++
}

func (d *Device) CreateAttribute(location uint32, size int32, data []float32) (gpu.Buffer, error) {
	id, err := d.alloc("attribute")
	if err != nil {
		return 0, err
	}
	buf := gpu.Buffer(id)
	d.Buffers[buf] = true
	d.Attributes = append(d.Attributes, Attribute{VertexArray: d.bound, Location: location, Size: size, Len: len(data)})
	return buf, nil
}

func (d *Device) CreateIndexBuffer(indices []uint32) (gpu.Buffer, error) {
	id, err := d.alloc("index buffer")
	if err != nil {
		return 0, err
	}
	buf := gpu.Buffer(id)
	d.Buffers[buf] = true
	d.IndexCounts = append(d.IndexCounts, len(indices))
	return buf, nil
}

func (d *Device) DeleteBuffer(buf gpu.Buffer) {
	delete(d.Buffers, buf)
	d.BufferDeletes++
}

func (d *Device) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	id, err := d.alloc("texture")
	if err != nil {
		return 0, err
	}
	tex := gpu.Texture(id)
	d.Textures[tex] = true
	d.TextureUploads++
	return tex, nil
}

func (d *Device) BindTexture(unit uint32, tex gpu.Texture) { d.units[unit] = tex }

func (d *Device) DeleteTexture(tex gpu.Texture) {
	delete(d.Textures, tex)
	d.TextureDeletes++
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	if d.LinkError {
		return 0, fmt.Errorf("%w: forced", gpu.ErrLink)
	}
	id, err := d.alloc("program")
	if err != nil {
		return 0, err
	}
	p := gpu.Program(id)
	d.Programs[p] = true
	return p, nil
}

func (d *Device) UseProgram(p gpu.Program) { d.program = p }

func (d *Device) DeleteProgram(p gpu.Program) { delete(d.Programs, p) }

func (d *Device) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	if d.Missing[name] {
		return -1
	}
	if loc, ok := d.locs[name]; ok {
		return loc
	}
	loc := gpu.Uniform(len(d.locs))
	d.locs[name] = loc
	d.names[loc] = name
	return loc
}

func (d *Device) set(loc gpu.Uniform, v any) {
	if loc < 0 {
		return
	}
	name := d.names[loc]
	d.Uniforms[name] = v
	d.Writes[name]++
}

func (d *Device) UniformMat4(loc gpu.Uniform, m mgl32.Mat4) { d.set(loc, m) }
func (d *Device) Uniform1i(loc gpu.Uniform, v int32)        { d.set(loc, v) }
func (d *Device) Uniform1f(loc gpu.Uniform, v float32)      { d.set(loc, v) }
func (d *Device) Uniform3f(loc gpu.Uniform, v mgl32.Vec3)   { d.set(loc, v) }
func (d *Device) Uniform4f(loc gpu.Uniform, v mgl32.Vec4)   { d.set(loc, v) }

func (d *Device) DrawIndexed(count int32) {
	uniforms := make(map[string]any, len(d.Uniforms))
	for k, v := range d.Uniforms {
		uniforms[k] = v
	}
	textures := make(map[uint32]gpu.Texture, len(d.units))
	for k, v := range d.units {
		textures[k] = v
	}
	d.Draws = append(d.Draws, Draw{
		VertexArray: d.bound,
		Program:     d.program,
		Count:       count,
		Textures:    textures,
		Uniforms:    uniforms,
	})
}

func (d *Device) Viewport(width, height int) { d.ViewportSize = [2]int{width, height} }

func (d *Device) Clear() { d.Clears++ }

func (d *Device) ReadPixels(width, height int) []byte {
	if d.Pixels != nil {
		return d.Pixels
	}
	return make([]byte, width*height*4)
}

// ResetFrame forgets recorded draws and uniform writes, keeping resources.
func (d *Device) ResetFrame() {
	d.Draws = nil
	d.Uniforms = make(map[string]any)
	d.Writes = make(map[string]int)
}

// Live reports the number of live GPU objects of every kind.
func (d *Device) Live() int {
	return len(d.VertexArrays) + len(d.Buffers) + len(d.Textures) + len(d.Programs)
}

// Vec3 returns the last vec3 written to name.
func (d *Device) Vec3(name string) mgl32.Vec3 {
	v, _ := d.Uniforms[name].(mgl32.Vec3)
	return v
}

// Float returns the last float written to name.
func (d *Device) Float(name string) float32 {
	v, _ := d.Uniforms[name].(float32)
	return v
}

// Int returns the last int written to name.
func (d *Device) Int(name string) int32 {
	v, _ := d.Uniforms[name].(int32)
	return v
}

// Mat4 returns the last matrix written to name.
func (d *Device) Mat4(name string) mgl32.Mat4 {
	v, _ := d.Uniforms[name].(mgl32.Mat4)
	return v
}

var _ gpu.Device = (*Device)(nil)
