package model

import "github.com/go-gl/mathgl/mgl32"

// DefaultColor is opaque black, the color of every unset material slot.
var DefaultColor = mgl32.Vec4{0, 0, 0, 1}

// Material describes surface appearance and owns the meshes drawn with it.
type Material struct {
	Name          string
	AmbientColor  mgl32.Vec4
	DiffuseColor  mgl32.Vec4
	SpecularColor mgl32.Vec4
	Reflectance   float32
	// TexturePath is empty for untextured materials, which then sample the
	// texture cache default.
	TexturePath   string
	NormalMapPath string

	meshes []*Mesh
}

// NewMaterial returns a material with every color set to DefaultColor.
func NewMaterial() *Material {
	return &Material{
		AmbientColor:  DefaultColor,
		DiffuseColor:  DefaultColor,
		SpecularColor: DefaultColor,
	}
}

// AddMesh transfers ownership of mesh to the material.
func (m *Material) AddMesh(mesh *Mesh) { m.meshes = append(m.meshes, mesh) }

// Meshes returns the owned meshes in insertion order.
func (m *Material) Meshes() []*Mesh { return m.meshes }

// HasNormalMap reports whether a normal map is assigned.
func (m *Material) HasNormalMap() bool { return m.NormalMapPath != "" }

// Release releases every owned mesh.
func (m *Material) Release() {
	for _, mesh := range m.meshes {
		mesh.Release()
	}
	m.meshes = nil
}
