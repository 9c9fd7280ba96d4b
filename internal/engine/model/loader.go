package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/logger"
)

// TextureSource creates GPU textures on demand.
type TextureSource interface {
	GetOrCreate(path string) (gpu.Texture, error)
}

// Load uploads an imported asset as a model. Referenced textures are
// created in textures right away so load errors surface here and not
// mid-frame. On error every mesh uploaded so far is released.
func Load(dev gpu.Device, textures TextureSource, id string, asset *Asset) (*Model, error) {
	materials := make([]*Material, 0, len(asset.Materials)+1)
	for _, am := range asset.Materials {
		mat, err := buildMaterial(textures, asset.Dir, am)
		if err != nil {
			return nil, fmt.Errorf("model %s: material %q: %w", id, am.Name, err)
		}
		materials = append(materials, mat)
	}

	fallback := NewMaterial()
	fallback.Name = "default"
	release := func() {
		for _, mat := range materials {
			mat.Release()
		}
		fallback.Release()
	}

	for _, am := range asset.Meshes {
		mesh, err := NewMesh(dev, am.Data)
		if err != nil {
			release()
			return nil, fmt.Errorf("model %s: mesh %q: %w", id, am.Name, err)
		}
		if am.Material >= 0 && am.Material < len(materials) {
			materials[am.Material].AddMesh(mesh)
		} else {
			fallback.AddMesh(mesh)
		}
	}
	if len(fallback.Meshes()) > 0 {
		materials = append(materials, fallback)
	}

	logger.Debug("model loaded",
		zap.String("id", id),
		zap.Int("materials", len(materials)),
		zap.Int("meshes", len(asset.Meshes)),
	)
	return New(id, materials), nil
}

func buildMaterial(textures TextureSource, dir string, am AssetMaterial) (*Material, error) {
	mat := NewMaterial()
	mat.Name = am.Name
	if am.Ambient != nil {
		mat.AmbientColor = *am.Ambient
	}
	if am.Diffuse != nil {
		mat.DiffuseColor = *am.Diffuse
	}
	if am.Specular != nil {
		mat.SpecularColor = *am.Specular
	}
	mat.Reflectance = am.Reflectance

	if am.DiffuseMap != "" {
		mat.TexturePath = ResolveTexturePath(dir, am.DiffuseMap)
		if _, err := textures.GetOrCreate(mat.TexturePath); err != nil {
			return nil, err
		}
		// The texture supplies the diffuse term.
		mat.DiffuseColor = DefaultColor
	}
	if am.NormalMap != "" {
		mat.NormalMapPath = ResolveTexturePath(dir, am.NormalMap)
		if _, err := textures.GetOrCreate(mat.NormalMapPath); err != nil {
			return nil, err
		}
	}
	return mat, nil
}

// ResolveTexturePath keeps only the file name of ref and places it in dir.
// Exported files often carry absolute paths from the authoring machine.
func ResolveTexturePath(dir, ref string) string {
	ref = strings.ReplaceAll(ref, "\\", "/")
	return filepath.Join(dir, filepath.Base(ref))
}
