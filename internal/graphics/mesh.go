package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"rama/internal/logging"
)

// Attribute slots of the mesh vertex layout.
const (
	SlotPosition uint32 = iota
	SlotUV
	SlotNormal
	SlotTangent
	SlotBitangent
)

// MeshData is a flattened model: parallel per-vertex arrays plus triangle
// indices.
type MeshData struct {
	Positions  []mgl32.Vec3
	UVs        []mgl32.Vec2
	Normals    []mgl32.Vec3
	Tangents   []mgl32.Vec3
	Bitangents []mgl32.Vec3
	Indices    []uint32
}

// Append concatenates other, rebasing its indices. Attribute arrays shorter
// than the position array are padded with zeros so sections stay aligned.
func (m *MeshData) Append(other MeshData) {
	base := uint32(len(m.Positions))
	m.pad()
	other.pad()
	m.Positions = append(m.Positions, other.Positions...)
	m.UVs = append(m.UVs, other.UVs...)
	m.Normals = append(m.Normals, other.Normals...)
	m.Tangents = append(m.Tangents, other.Tangents...)
	m.Bitangents = append(m.Bitangents, other.Bitangents...)
	for _, i := range other.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

func (m *MeshData) pad() {
	n := len(m.Positions)
	for len(m.UVs) < n {
		m.UVs = append(m.UVs, mgl32.Vec2{})
	}
	for _, s := range []*[]mgl32.Vec3{&m.Normals, &m.Tangents, &m.Bitangents} {
		for len(*s) < n {
			*s = append(*s, mgl32.Vec3{})
		}
	}
}

// Layout packs the arrays section by section (all positions, then all uvs,
// and so on) and returns the buffer with the matching attribute sections.
func (m MeshData) Layout() ([]float32, []AttributeSection) {
	m.pad()
	n := len(m.Positions)
	buf := make([]float32, 0, n*(3+2+3+3+3))
	sections := make([]AttributeSection, 0, 5)

	add := func(slot uint32, comps int32, values []float32) {
		sections = append(sections, AttributeSection{Slot: slot, Components: comps, Offset: len(buf) * 4})
		buf = append(buf, values...)
	}
	add(SlotPosition, 3, flatten3(m.Positions[:n]))
	add(SlotUV, 2, flatten2(m.UVs[:n]))
	add(SlotNormal, 3, flatten3(m.Normals[:n]))
	add(SlotTangent, 3, flatten3(m.Tangents[:n]))
	add(SlotBitangent, 3, flatten3(m.Bitangents[:n]))
	return buf, sections
}

func flatten3(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

func flatten2(vs []mgl32.Vec2) []float32 {
	out := make([]float32, 0, len(vs)*2)
	for _, v := range vs {
		out = append(out, v[0], v[1])
	}
	return out
}

// Mesh is an uploaded MeshData.
type Mesh struct {
	ID         uuid.UUID
	Label      string
	IndexCount int32

	buffers MeshBuffers
	dev     Device
	tracker *Tracker
}

// NewMesh uploads data as one section-packed vertex buffer and an index buffer.
func (r *Resources) NewMesh(label string, data MeshData) *Mesh {
	vertices, layout := data.Layout()
	return &Mesh{
		ID:         r.Tracker.register(KindMesh, label),
		Label:      label,
		IndexCount: int32(len(data.Indices)),
		buffers:    r.Device.CreateMesh(layout, vertices, data.Indices),
		dev:        r.Device,
		tracker:    r.Tracker,
	}
}

// LoadMesh imports a model file through the configured importer.
func (r *Resources) LoadMesh(path string) (*Mesh, error) {
	data, err := r.Importer.Import(path)
	if err != nil {
		logging.Error("failed to import mesh %s: %v", path, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrMeshImport, path, err)
	}
	return r.NewMesh(path, data), nil
}

// Draw issues an indexed triangle list draw with the current pipeline state.
func (m *Mesh) Draw() {
	if m.buffers.VAO == 0 {
		return
	}
	m.dev.DrawIndexed(m.buffers.VAO, m.IndexCount)
}

// Destroy releases the buffers. Further calls are ignored.
func (m *Mesh) Destroy() {
	if m.buffers.VAO == 0 {
		return
	}
	m.dev.DeleteMesh(m.buffers)
	m.buffers = MeshBuffers{}
	m.tracker.release(m.ID)
}
