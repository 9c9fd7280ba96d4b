package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/logger"
)

// GL implements Device on top of an OpenGL 4.1 core context.
type GL struct {
	anisotropy float32
}

// NewGL loads the OpenGL function pointers and sets the default pipeline
// state. Must be called after the context is current.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	return &GL{anisotropy: 8.0}, nil
}

func (d *GL) CreateVertexArray() (VertexArray, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("vertex array: %w", ErrAlloc)
	}
	gl.BindVertexArray(vao)
	return VertexArray(vao), nil
}

func (d *GL) BindVertexArray(vao VertexArray) {
	gl.BindVertexArray(uint32(vao))
}

func (d *GL) DeleteVertexArray(vao VertexArray) {
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (d *GL) CreateAttribute(location uint32, size int32, data []float32) (Buffer, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("attribute %d: %w", location, ErrAlloc)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, ptr, gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, 0, 0)
	return Buffer(vbo), nil
}

func (d *GL) CreateIndexBuffer(indices []uint32) (Buffer, error) {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	if ebo == 0 {
		return 0, fmt.Errorf("index buffer: %w", ErrAlloc)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	var ptr unsafe.Pointer
	if len(indices) > 0 {
		ptr = gl.Ptr(indices)
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, ptr, gl.STATIC_DRAW)
	return Buffer(ebo), nil
}

func (d *GL) DeleteBuffer(buf Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (d *GL) CreateTexture(img *image.RGBA) (Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("texture %dx%d: %w", w, h, ErrAlloc)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("texture: %w", ErrAlloc)
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if d.anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, d.anisotropy)
	}
	return Texture(tex), nil
}

func (d *GL) BindTexture(unit uint32, tex Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (d *GL) DeleteTexture(tex Texture) {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

// CreateProgram compiles vertex and fragment shaders and links them.
func (d *GL) CreateProgram(vertexSrc, fragmentSrc string) (Program, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, msg)
	}

	// Validation needs a bound VAO on core profiles, so only report it.
	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		logger.Warn("shader program validation", zap.String("log", programLog(program)))
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return Program(program), nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, name, string(log))
	}
	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := make([]byte, logLen+1)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return string(log)
}

func (d *GL) UseProgram(p Program) {
	gl.UseProgram(uint32(p))
}

func (d *GL) DeleteProgram(p Program) {
	gl.DeleteProgram(uint32(p))
}

func (d *GL) UniformLocation(p Program, name string) Uniform {
	return Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *GL) UniformMat4(loc Uniform, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (d *GL) Uniform1i(loc Uniform, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (d *GL) Uniform1f(loc Uniform, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (d *GL) Uniform3f(loc Uniform, v mgl32.Vec3) {
	gl.Uniform3f(int32(loc), v[0], v[1], v[2])
}

func (d *GL) Uniform4f(loc Uniform, v mgl32.Vec4) {
	gl.Uniform4f(int32(loc), v[0], v[1], v[2], v[3])
}

func (d *GL) DrawIndexed(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}

func (d *GL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear restores the scene pipeline state, which overlay renderers may
// change between frames, then clears color and depth.
func (d *GL) Clear() {
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GL) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}
