package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/engine/lighting"
	"github.com/Faultbox/blackjack/internal/engine/shader"
)

// Texture units used by the scene shader.
const (
	diffuseUnit   = 0
	normalMapUnit = 1
)

type pointLightUniforms struct {
	position, color, intensity string
	constant, linear, exponent string
}

func pointUniforms(prefix string) pointLightUniforms {
	return pointLightUniforms{
		position:  prefix + ".position",
		color:     prefix + ".color",
		intensity: prefix + ".intensity",
		constant:  prefix + ".att.constant",
		linear:    prefix + ".att.linear",
		exponent:  prefix + ".att.exponent",
	}
}

type spotLightUniforms struct {
	pl      pointLightUniforms
	conedir string
	cutoff  string
}

// Renderer draws a Scene with the lit scene shader.
type Renderer struct {
	dev     gpu.Device
	program *shader.Program
	points  [lighting.MaxPointLights]pointLightUniforms
	spots   [lighting.MaxSpotLights]spotLightUniforms
}

// NewRenderer compiles the scene shader and resolves its uniforms.
func NewRenderer(dev gpu.Device) (*Renderer, error) {
	program, err := shader.New(dev, shader.SceneVertexShader, shader.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene renderer: %w", err)
	}
	r := &Renderer{dev: dev, program: program}

	program.Define(
		"projectionMatrix", "viewMatrix", "modelMatrix",
		"txtSampler", "normalSampler", "selected",
		"material.ambient", "material.diffuse", "material.specular",
		"material.reflectance", "material.hasNormalMap",
		"ambientLight.factor", "ambientLight.color",
		"dirLight.color", "dirLight.direction", "dirLight.intensity",
	)
	for i := range r.points {
		r.points[i] = pointUniforms(fmt.Sprintf("pointLights[%d]", i))
		r.definePoint(r.points[i])
	}
	for i := range r.spots {
		prefix := fmt.Sprintf("spotLights[%d]", i)
		r.spots[i] = spotLightUniforms{
			pl:      pointUniforms(prefix + ".pl"),
			conedir: prefix + ".conedir",
			cutoff:  prefix + ".cutoff",
		}
		r.definePoint(r.spots[i].pl)
		program.Define(r.spots[i].conedir, r.spots[i].cutoff)
	}
	return r, nil
}

func (r *Renderer) definePoint(u pointLightUniforms) {
	r.program.Define(u.position, u.color, u.intensity, u.constant, u.linear, u.exponent)
}

// Render draws every entity of every model, grouped by material and mesh.
func (r *Renderer) Render(s *Scene) {
	p := r.program
	p.Bind()

	r.updateLights(s.Lights(), s.Camera().ViewMatrix())

	p.SetMat4("projectionMatrix", s.Projection().Matrix())
	p.SetMat4("viewMatrix", s.Camera().ViewMatrix())
	p.SetInt("txtSampler", diffuseUnit)
	p.SetInt("normalSampler", normalMapUnit)

	textures := s.Textures()
	selected := s.Selected()

	for _, m := range s.Models() {
		entities := m.Entities()
		if len(entities) == 0 {
			continue
		}
		for _, mat := range m.Materials() {
			p.SetVec4("material.ambient", mat.AmbientColor)
			p.SetVec4("material.diffuse", mat.DiffuseColor)
			p.SetVec4("material.specular", mat.SpecularColor)
			p.SetFloat("material.reflectance", mat.Reflectance)

			r.dev.BindTexture(diffuseUnit, textures.Texture(mat.TexturePath))
			if mat.HasNormalMap() {
				r.dev.BindTexture(normalMapUnit, textures.Texture(mat.NormalMapPath))
				p.SetInt("material.hasNormalMap", 1)
			} else {
				p.SetInt("material.hasNormalMap", 0)
			}

			for _, mesh := range mat.Meshes() {
				r.dev.BindVertexArray(mesh.VertexArray())
				for _, e := range entities {
					p.SetMat4("modelMatrix", e.ModelMatrix())
					if selected != nil && selected.ID() == e.ID() {
						p.SetInt("selected", 1)
					} else {
						p.SetInt("selected", 0)
					}
					r.dev.DrawIndexed(mesh.VertexCount())
				}
			}
		}
	}

	r.dev.BindVertexArray(0)
	p.Unbind()
}

// updateLights writes every light slot. Slots past the live count are
// zeroed so lights removed since the last frame do not linger.
func (r *Renderer) updateLights(lights *lighting.Lights, view mgl32.Mat4) {
	p := r.program

	p.SetFloat("ambientLight.factor", lights.Ambient.Intensity)
	p.SetVec3("ambientLight.color", lights.Ambient.Color)

	p.SetVec3("dirLight.color", lights.Dir.Color)
	p.SetVec3("dirLight.direction", lights.Dir.Direction)
	p.SetFloat("dirLight.intensity", lights.Dir.Intensity)

	points := lights.PointLights()
	for i, u := range r.points {
		if i < len(points) {
			r.setPointLight(u, &points[i], view)
		} else {
			r.setPointLight(u, nil, view)
		}
	}

	spots := lights.SpotLights()
	for i, u := range r.spots {
		if i < len(spots) {
			sl := &spots[i]
			r.setPointLight(u.pl, &sl.PointLight, view)
			p.SetVec3(u.conedir, sl.ConeDirection)
			p.SetFloat(u.cutoff, sl.CutOff())
		} else {
			r.setPointLight(u.pl, nil, view)
			p.SetVec3(u.conedir, mgl32.Vec3{})
			p.SetFloat(u.cutoff, 0)
		}
	}
}

// setPointLight writes one slot, with the position in view space. A nil
// light writes zeros.
func (r *Renderer) setPointLight(u pointLightUniforms, pl *lighting.PointLight, view mgl32.Mat4) {
	p := r.program
	if pl == nil {
		p.SetVec3(u.position, mgl32.Vec3{})
		p.SetVec3(u.color, mgl32.Vec3{})
		p.SetFloat(u.intensity, 0)
		p.SetFloat(u.constant, 0)
		p.SetFloat(u.linear, 0)
		p.SetFloat(u.exponent, 0)
		return
	}
	p.SetVec3(u.position, view.Mul4x1(pl.Position.Vec4(1)).Vec3())
	p.SetVec3(u.color, pl.Color)
	p.SetFloat(u.intensity, pl.Intensity)
	p.SetFloat(u.constant, pl.Attenuation.Constant)
	p.SetFloat(u.linear, pl.Attenuation.Linear)
	p.SetFloat(u.exponent, pl.Attenuation.Exponent)
}

// Release deletes the shader program.
func (r *Renderer) Release() {
	r.program.Release()
}
