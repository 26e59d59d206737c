package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// MeshImporter turns a model file into flattened mesh data.
type MeshImporter interface {
	Import(path string) (MeshData, error)
}

// GLTFImporter reads glTF 2.0 files (.gltf and .glb). Every primitive of
// every mesh reachable from the default scene is concatenated; materials
// and node transforms are ignored.
type GLTFImporter struct{}

func (GLTFImporter) Import(path string) (MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return MeshData{}, err
	}
	return ImportDocument(doc)
}

// ImportDocument flattens an already parsed document.
func ImportDocument(doc *gltf.Document) (MeshData, error) {
	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	var out MeshData
	visited := make(map[int]bool)
	var walk func(idx int) error
	walk = func(idx int) error {
		if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
			return nil
		}
		visited[idx] = true
		node := doc.Nodes[idx]
		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			for pi, prim := range doc.Meshes[*node.Mesh].Primitives {
				data, err := readPrimitive(doc, prim)
				if err != nil {
					return fmt.Errorf("mesh %d primitive %d: %w", *node.Mesh, pi, err)
				}
				out.Append(data)
			}
		}
		for _, child := range node.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := walk(root); err != nil {
			return MeshData{}, err
		}
	}
	if len(out.Positions) == 0 {
		return MeshData{}, errors.New("no geometry in scene")
	}
	return out, nil
}

func accessor(doc *gltf.Document, prim *gltf.Primitive, name string) *gltf.Accessor {
	idx, ok := prim.Attributes[name]
	if !ok || idx >= len(doc.Accessors) {
		return nil
	}
	return doc.Accessors[idx]
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (MeshData, error) {
	var data MeshData

	acr := accessor(doc, prim, "POSITION")
	if acr == nil {
		return data, errors.New("primitive has no positions")
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return data, err
	}
	for _, p := range positions {
		data.Positions = append(data.Positions, mgl32.Vec3(p))
	}

	if acr := accessor(doc, prim, "TEXCOORD_0"); acr != nil {
		uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return data, err
		}
		for _, uv := range uvs {
			data.UVs = append(data.UVs, mgl32.Vec2(uv))
		}
	}
	if acr := accessor(doc, prim, "NORMAL"); acr != nil {
		normals, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return data, err
		}
		for _, n := range normals {
			data.Normals = append(data.Normals, mgl32.Vec3(n))
		}
	}
	if acr := accessor(doc, prim, "TANGENT"); acr != nil {
		tangents, err := modeler.ReadTangent(doc, acr, nil)
		if err != nil {
			return data, err
		}
		for i, t := range tangents {
			tangent := mgl32.Vec3{t[0], t[1], t[2]}
			data.Tangents = append(data.Tangents, tangent)
			var normal mgl32.Vec3
			if i < len(data.Normals) {
				normal = data.Normals[i]
			}
			data.Bitangents = append(data.Bitangents, normal.Cross(tangent).Mul(t[3]))
		}
	}

	if prim.Indices != nil && *prim.Indices < len(doc.Accessors) {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return data, err
		}
		data.Indices = indices
	} else {
		for i := range data.Positions {
			data.Indices = append(data.Indices, uint32(i))
		}
	}
	return data, nil
}
