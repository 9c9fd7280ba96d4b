package model

// Model is a named set of materials (and through them, meshes) shared by
// any number of entities.
type Model struct {
	id        string
	materials []*Material
	entities  []*Entity
}

// New creates a model that owns materials.
func New(id string, materials []*Material) *Model {
	return &Model{id: id, materials: materials}
}

// ID returns the model id.
func (m *Model) ID() string { return m.id }

// Materials returns the owned materials in draw order.
func (m *Model) Materials() []*Material { return m.materials }

// Entities returns the instances drawn with this model.
func (m *Model) Entities() []*Entity { return m.entities }

// AddEntity registers an instance of the model.
func (m *Model) AddEntity(e *Entity) { m.entities = append(m.entities, e) }

// RemoveEntity drops the entity with id and reports whether it was present.
func (m *Model) RemoveEntity(id string) bool {
	for i, e := range m.entities {
		if e.ID() == id {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Release releases every material and its meshes.
func (m *Model) Release() {
	for _, mat := range m.materials {
		mat.Release()
	}
}
