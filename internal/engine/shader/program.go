// Package shader manages linked shader programs and their uniforms.
package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/logger"
)

// Program is a linked shader program with a cache of uniform locations.
type Program struct {
	dev      gpu.Device
	id       gpu.Program
	uniforms map[string]gpu.Uniform
}

// New compiles and links a program.
func New(dev gpu.Device, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := dev.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	return &Program{
		dev:      dev,
		id:       id,
		uniforms: make(map[string]gpu.Uniform),
	}, nil
}

// ID returns the device handle.
func (p *Program) ID() gpu.Program { return p.id }

// Bind makes the program current.
func (p *Program) Bind() { p.dev.UseProgram(p.id) }

// Unbind clears the current program.
func (p *Program) Unbind() { p.dev.UseProgram(0) }

// Define looks up and caches the locations of names. Uniforms the driver
// optimized away are logged and kept at -1 so setters become no-ops.
func (p *Program) Define(names ...string) {
	for _, name := range names {
		loc := p.dev.UniformLocation(p.id, name)
		if loc < 0 {
			logger.Debug("uniform not active", zap.String("name", name), zap.Uint32("program", uint32(p.id)))
		}
		p.uniforms[name] = loc
	}
}

// location returns the cached location, defining it on first use.
func (p *Program) location(name string) gpu.Uniform {
	loc, ok := p.uniforms[name]
	if !ok {
		p.Define(name)
		loc = p.uniforms[name]
	}
	return loc
}

// SetMat4 writes a mat4 uniform. The Set methods ignore inactive names.
func (p *Program) SetMat4(name string, m mgl32.Mat4) { p.dev.UniformMat4(p.location(name), m) }
func (p *Program) SetInt(name string, v int32)       { p.dev.Uniform1i(p.location(name), v) }
func (p *Program) SetFloat(name string, v float32)   { p.dev.Uniform1f(p.location(name), v) }
func (p *Program) SetVec3(name string, v mgl32.Vec3) { p.dev.Uniform3f(p.location(name), v) }
func (p *Program) SetVec4(name string, v mgl32.Vec4) { p.dev.Uniform4f(p.location(name), v) }

// Release deletes the program. Safe to call more than once.
func (p *Program) Release() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
