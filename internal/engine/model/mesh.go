// Package model holds the mesh, material, model and entity hierarchy that
// the scene renders.
package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blackjack/internal/engine/gpu"
)

// MeshData is CPU-side geometry ready for upload. Every per-vertex slice
// must describe the same number of vertices; this is not validated.
type MeshData struct {
	Positions  []float32 // xyz
	Normals    []float32 // xyz
	Tangents   []float32 // xyz
	Bitangents []float32 // xyz
	TexCoords  []float32 // uv
	Indices    []uint32
	AABBMin    mgl32.Vec3
	AABBMax    mgl32.Vec3
}

// Mesh is geometry resident on the GPU: one vertex array with a buffer per
// attribute and an element buffer.
type Mesh struct {
	dev         gpu.Device
	vao         gpu.VertexArray
	buffers     []gpu.Buffer
	vertexCount int32
	aabbMin     mgl32.Vec3
	aabbMax     mgl32.Vec3
}

// NewMesh uploads data. If any allocation fails, everything allocated so
// far is released before the error is returned.
func NewMesh(dev gpu.Device, data MeshData) (*Mesh, error) {
	m := &Mesh{
		dev:         dev,
		vertexCount: int32(len(data.Indices)),
		aabbMin:     data.AABBMin,
		aabbMax:     data.AABBMax,
		buffers:     make([]gpu.Buffer, 0, 6),
	}

	vao, err := dev.CreateVertexArray()
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	m.vao = vao

	attribs := []struct {
		location uint32
		size     int32
		data     []float32
	}{
		{gpu.AttribPosition, 3, data.Positions},
		{gpu.AttribNormal, 3, data.Normals},
		{gpu.AttribTangent, 3, data.Tangents},
		{gpu.AttribBitangent, 3, data.Bitangents},
		{gpu.AttribTexCoord, 2, data.TexCoords},
	}
	for _, a := range attribs {
		buf, err := dev.CreateAttribute(a.location, a.size, a.data)
		if err != nil {
			m.Release()
			return nil, fmt.Errorf("mesh: %w", err)
		}
		m.buffers = append(m.buffers, buf)
	}

	ebo, err := dev.CreateIndexBuffer(data.Indices)
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("mesh: %w", err)
	}
	m.buffers = append(m.buffers, ebo)

	dev.BindVertexArray(0)
	return m, nil
}

// VertexArray returns the handle to bind before drawing.
func (m *Mesh) VertexArray() gpu.VertexArray { return m.vao }

// VertexCount is the number of indices drawn per instance.
func (m *Mesh) VertexCount() int32 { return m.vertexCount }

// AABB returns the model-space bounding box.
func (m *Mesh) AABB() (min, max mgl32.Vec3) { return m.aabbMin, m.aabbMax }

// Release deletes the GPU objects. Later calls do nothing.
func (m *Mesh) Release() {
	for _, buf := range m.buffers {
		m.dev.DeleteBuffer(buf)
	}
	m.buffers = nil
	if m.vao != 0 {
		m.dev.DeleteVertexArray(m.vao)
		m.vao = 0
	}
}
