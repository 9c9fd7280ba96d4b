// Package gpu defines the graphics device used by the scene renderer.
//
// Everything that touches GPU state goes through Device so the scene code
// can be driven by the OpenGL implementation at runtime and by a recording
// fake in tests.
package gpu

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle types. Zero is never a valid handle.
type (
	VertexArray uint32
	Buffer      uint32
	Texture     uint32
	Program     uint32
)

// Uniform is a uniform location. Negative locations are silently ignored
// by every setter, matching OpenGL.
type Uniform int32

// Vertex attribute locations shared by mesh upload and the scene shader.
const (
	AttribPosition  uint32 = 0
	AttribNormal    uint32 = 1
	AttribTangent   uint32 = 2
	AttribBitangent uint32 = 3
	AttribTexCoord  uint32 = 4
)

var (
	// ErrAlloc is returned when the device cannot create a resource.
	ErrAlloc = errors.New("gpu: allocation failed")
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("gpu: shader compile failed")
	// ErrLink is returned when a program fails to link.
	ErrLink = errors.New("gpu: program link failed")
)

// Device is the set of GPU operations the engine needs.
// All calls must happen on the thread that owns the context.
type Device interface {
	CreateVertexArray() (VertexArray, error)
	BindVertexArray(vao VertexArray)
	DeleteVertexArray(vao VertexArray)

	// CreateAttribute uploads data into a new buffer bound to the currently
	// bound vertex array at location, with size floats per vertex.
	CreateAttribute(location uint32, size int32, data []float32) (Buffer, error)
	// CreateIndexBuffer uploads an element buffer into the bound vertex array.
	CreateIndexBuffer(indices []uint32) (Buffer, error)
	DeleteBuffer(buf Buffer)

	CreateTexture(img *image.RGBA) (Texture, error)
	BindTexture(unit uint32, tex Texture)
	DeleteTexture(tex Texture)

	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	UseProgram(p Program)
	DeleteProgram(p Program)
	UniformLocation(p Program, name string) Uniform

	UniformMat4(loc Uniform, m mgl32.Mat4)
	Uniform1i(loc Uniform, v int32)
	Uniform1f(loc Uniform, v float32)
	Uniform3f(loc Uniform, v mgl32.Vec3)
	Uniform4f(loc Uniform, v mgl32.Vec4)

	// DrawIndexed draws count indices as triangles from the bound vertex array.
	DrawIndexed(count int32)

	Viewport(width, height int)
	Clear()
	// ReadPixels returns the RGBA framebuffer contents, bottom row first.
	ReadPixels(width, height int) []byte
}
