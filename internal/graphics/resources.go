package graphics

import "errors"

var (
	ErrTextureDecode = errors.New("failed to load texture data")
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrShaderLink    = errors.New("shader program linking failed")
	ErrMeshImport    = errors.New("mesh import failed")
	ErrSpriteParse   = errors.New("sprite sheet parse failed")
)

// Resources creates render resources on one device and registers them with
// a tracker.
type Resources struct {
	Device  Device
	Tracker *Tracker
	// GLSLVersion is prepended to both stages by LoadShader and
	// NewShaderWithVersion when no explicit version is given.
	GLSLVersion string
	Importer    MeshImporter
}

// NewResources wires a resource factory with the glTF importer.
func NewResources(dev Device, tracker *Tracker, glslVersion string) *Resources {
	return &Resources{
		Device:      dev,
		Tracker:     tracker,
		GLSLVersion: glslVersion,
		Importer:    GLTFImporter{},
	}
}
