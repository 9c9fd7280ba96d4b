package model

import "github.com/go-gl/mathgl/mgl32"

// Asset is the importer-neutral description of a model file.
type Asset struct {
	// Dir is the directory texture references are resolved against.
	Dir       string
	Materials []AssetMaterial
	Meshes    []AssetMesh
}

// AssetMaterial is a material as read from the file. Texture paths are
// file references, possibly from another machine.
type AssetMaterial struct {
	Name        string
	Ambient     *mgl32.Vec4
	Diffuse     *mgl32.Vec4
	Specular    *mgl32.Vec4
	Reflectance float32
	DiffuseMap  string
	NormalMap   string
}

// AssetMesh is one submesh. Material indexes Asset.Materials; values out
// of range select a synthesized default material.
type AssetMesh struct {
	Name     string
	Material int
	Data     MeshData
}
