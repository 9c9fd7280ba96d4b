package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/model"
	"github.com/Faultbox/blackjack/internal/logger"
)

// OBJ imports Wavefront OBJ files and their MTL material libraries.
type OBJ struct{}

// Import decodes path. The material library is taken from the first
// mtllib statement, falling back to <name>.mtl beside the file. A missing
// library is not an error; faces then use the default material.
func (OBJ) Import(path string) (*model.Asset, error) {
	fobj, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer fobj.Close()

	dir := filepath.Dir(path)
	var mtl []byte
	if mtlPath := findMaterialLib(fobj, path); mtlPath != "" {
		mtl, err = os.ReadFile(mtlPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
	}
	if _, err := fobj.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	dec, err := obj.DecodeReader(fobj, bytes.NewReader(mtl))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	for _, w := range dec.Warnings {
		logger.Debug("obj warning", zap.String("path", path), zap.String("warning", w))
	}

	asset := convert(dec, normalMaps(bytes.NewReader(mtl)))
	asset.Dir = dir
	return asset, nil
}

// findMaterialLib returns the MTL file for the OBJ at path, or "".
func findMaterialLib(r io.Reader, path string) string {
	dir := filepath.Dir(path)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "mtllib" {
			candidate := filepath.Join(dir, strings.Join(fields[1:], " "))
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
			break
		}
	}
	candidate := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// normalMaps returns the normal map of every material in an MTL library.
// The decoder only keeps map_Kd, so bump and norm maps are read here.
// Texture options such as "-bm 1" precede the file name.
func normalMaps(r io.Reader) map[string]string {
	maps := make(map[string]string)
	current := ""
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "newmtl":
			current = strings.Join(fields[1:], " ")
		case "map_bump", "bump", "norm", "map_norm":
			if current == "" {
				continue
			}
			if file := fields[len(fields)-1]; !strings.HasPrefix(file, "-") {
				maps[current] = file
			}
		}
	}
	return maps
}

// convert turns decoded OBJ data into one submesh per object and material.
// Materials are ordered by first use, then unused ones by name.
func convert(dec *obj.Decoder, normals map[string]string) *model.Asset {
	asset := &model.Asset{}
	matIndex := make(map[string]int)

	addMaterial := func(name string) int {
		if idx, ok := matIndex[name]; ok {
			return idx
		}
		m, ok := dec.Materials[name]
		if !ok {
			return -1
		}
		idx := len(asset.Materials)
		matIndex[name] = idx
		mat := convertMaterial(name, m)
		mat.NormalMap = normals[name]
		asset.Materials = append(asset.Materials, mat)
		return idx
	}

	for _, o := range dec.Objects {
		order := make([]string, 0, 1)
		groups := make(map[string][]obj.Face)
		for _, f := range o.Faces {
			if _, ok := groups[f.Material]; !ok {
				order = append(order, f.Material)
			}
			groups[f.Material] = append(groups[f.Material], f)
		}
		for _, name := range order {
			b := newMeshBuilder(dec)
			for _, f := range groups[name] {
				b.addFace(f)
			}
			if len(b.indices) == 0 {
				continue
			}
			asset.Meshes = append(asset.Meshes, model.AssetMesh{
				Name:     o.Name,
				Material: addMaterial(name),
				Data:     b.build(),
			})
		}
	}

	unused := make([]string, 0)
	for name := range dec.Materials {
		if _, ok := matIndex[name]; !ok {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	for _, name := range unused {
		addMaterial(name)
	}
	return asset
}

// convertMaterial names the material by its library key; the decoder may
// substitute a shared unnamed default for materials it could not read.
func convertMaterial(name string, m *obj.Material) model.AssetMaterial {
	ambient := mgl32.Vec4{m.Ambient.R, m.Ambient.G, m.Ambient.B, 1}
	diffuse := mgl32.Vec4{m.Diffuse.R, m.Diffuse.G, m.Diffuse.B, 1}
	specular := mgl32.Vec4{m.Specular.R, m.Specular.G, m.Specular.B, 1}
	// OBJ has no shininess strength; reflectance stays zero.
	return model.AssetMaterial{
		Name:       name,
		Ambient:    &ambient,
		Diffuse:    &diffuse,
		Specular:   &specular,
		DiffuseMap: m.MapKd,
	}
}

type vertexKey struct {
	v, uv, n int
}

// meshBuilder de-indexes OBJ faces into a single index space, joining
// identical position/uv/normal triples.
type meshBuilder struct {
	dec       *obj.Decoder
	lookup    map[vertexKey]uint32
	positions []float32
	normals   []float32
	uvs       []float32
	hasUV     bool
	indices   []uint32
}

func newMeshBuilder(dec *obj.Decoder) *meshBuilder {
	return &meshBuilder{dec: dec, lookup: make(map[vertexKey]uint32)}
}

// addFace triangulates a face as a fan.
func (b *meshBuilder) addFace(f obj.Face) {
	if len(f.Vertices) < 3 {
		return
	}
	for i := 1; i+1 < len(f.Vertices); i++ {
		corners := [3]int{0, i, i + 1}
		valid := true
		for _, c := range corners {
			if !inRange(f.Vertices[c], len(b.dec.Vertices)/3) {
				valid = false
			}
		}
		if !valid {
			continue
		}
		flat := b.faceNormal(f, corners)
		for _, c := range corners {
			b.indices = append(b.indices, b.vertex(f, c, flat))
		}
	}
}

func (b *meshBuilder) faceNormal(f obj.Face, corners [3]int) mgl32.Vec3 {
	p0 := b.position(f.Vertices[corners[0]])
	p1 := b.position(f.Vertices[corners[1]])
	p2 := b.position(f.Vertices[corners[2]])
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

func (b *meshBuilder) position(i int) mgl32.Vec3 {
	v := b.dec.Vertices
	return mgl32.Vec3{v[i*3], v[i*3+1], v[i*3+2]}
}

func (b *meshBuilder) vertex(f obj.Face, corner int, flat mgl32.Vec3) uint32 {
	key := vertexKey{v: f.Vertices[corner], uv: -1, n: -1}
	if corner < len(f.Uvs) && inRange(f.Uvs[corner], len(b.dec.Uvs)/2) {
		key.uv = f.Uvs[corner]
	}
	if corner < len(f.Normals) && inRange(f.Normals[corner], len(b.dec.Normals)/3) {
		key.n = f.Normals[corner]
	}
	// Vertices without a normal take the face normal and are never shared.
	if key.n >= 0 {
		if idx, ok := b.lookup[key]; ok {
			return idx
		}
	}

	idx := uint32(len(b.positions) / 3)
	p := b.position(key.v)
	b.positions = append(b.positions, p[0], p[1], p[2])

	n := flat
	if key.n >= 0 {
		dn := b.dec.Normals
		n = mgl32.Vec3{dn[key.n*3], dn[key.n*3+1], dn[key.n*3+2]}
	}
	b.normals = append(b.normals, n[0], n[1], n[2])

	var u, v float32
	if key.uv >= 0 {
		b.hasUV = true
		u = b.dec.Uvs[key.uv*2]
		v = 1 - b.dec.Uvs[key.uv*2+1]
	}
	b.uvs = append(b.uvs, u, v)

	if key.n >= 0 {
		b.lookup[key] = idx
	}
	return idx
}

func (b *meshBuilder) build() model.MeshData {
	data := model.MeshData{
		Positions: b.positions,
		Normals:   b.normals,
		TexCoords: b.uvs,
		Indices:   b.indices,
	}
	if b.hasUV {
		data.Tangents, data.Bitangents = TangentSpace(b.positions, b.normals, b.uvs, b.indices)
	} else {
		data.Tangents = make([]float32, len(b.positions))
		data.Bitangents = make([]float32, len(b.positions))
	}
	data.AABBMin, data.AABBMax = Bounds(b.positions)
	return data
}

// inRange also rejects the decoder's missing-index marker.
func inRange(i, n int) bool {
	return i >= 0 && i < n
}
