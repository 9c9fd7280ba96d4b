package importer

import "github.com/go-gl/mathgl/mgl32"

// TangentSpace computes per-vertex tangents and bitangents from triangle
// UV gradients. Vertices on degenerate UV triangles get zero vectors.
func TangentSpace(positions, normals, uvs []float32, indices []uint32) (tangents, bitangents []float32) {
	n := len(positions) / 3
	tan := make([]mgl32.Vec3, n)
	bitan := make([]mgl32.Vec3, n)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vec3At(positions, i0), vec3At(positions, i1), vec3At(positions, i2)
		u0, u1, u2 := vec2At(uvs, i0), vec2At(uvs, i1), vec2At(uvs, i2)

		e1, e2 := p1.Sub(p0), p2.Sub(p0)
		d1, d2 := u1.Sub(u0), u2.Sub(u0)
		det := d1[0]*d2[1] - d2[0]*d1[1]
		if det == 0 {
			continue
		}
		r := 1 / det
		t := e1.Mul(d2[1]).Sub(e2.Mul(d1[1])).Mul(r)
		b := e2.Mul(d1[0]).Sub(e1.Mul(d2[0])).Mul(r)
		for _, idx := range [3]uint32{i0, i1, i2} {
			tan[idx] = tan[idx].Add(t)
			bitan[idx] = bitan[idx].Add(b)
		}
	}

	tangents = make([]float32, len(positions))
	bitangents = make([]float32, len(positions))
	for i := 0; i < n; i++ {
		nrm := vec3At(normals, uint32(i))
		t := tan[i]
		// Gram-Schmidt against the normal.
		t = t.Sub(nrm.Mul(nrm.Dot(t)))
		if t.Len() > 0 {
			t = t.Normalize()
		}
		b := bitan[i]
		if b.Len() > 0 {
			b = b.Normalize()
		}
		copy(tangents[i*3:], t[:])
		copy(bitangents[i*3:], b[:])
	}
	return tangents, bitangents
}

// Bounds returns the axis-aligned box around xyz positions. Empty input
// yields a zero box.
func Bounds(positions []float32) (min, max mgl32.Vec3) {
	if len(positions) < 3 {
		return min, max
	}
	min = vec3At(positions, 0)
	max = min
	for i := 3; i+2 < len(positions); i += 3 {
		for a := 0; a < 3; a++ {
			v := positions[i+a]
			if v < min[a] {
				min[a] = v
			}
			if v > max[a] {
				max[a] = v
			}
		}
	}
	return min, max
}

func vec3At(s []float32, i uint32) mgl32.Vec3 {
	if int(i)*3+2 >= len(s) {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{s[i*3], s[i*3+1], s[i*3+2]}
}

func vec2At(s []float32, i uint32) mgl32.Vec2 {
	if int(i)*2+1 >= len(s) {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{s[i*2], s[i*2+1]}
}
