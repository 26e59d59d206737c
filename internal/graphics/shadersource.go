package graphics

import (
	"bufio"
	"io"
	"strings"
)

const (
	vertexMarker   = "@vertex"
	fragmentMarker = "@fragment"
)

// ShaderSource is a vertex/fragment pair split out of a combined file.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ParseShaderSource splits a combined shader file. A line equal to
// "@vertex" or "@fragment" starts that section; every following line up to
// the next marker belongs to it verbatim and ends with a newline. Lines
// before the first marker are dropped.
func ParseShaderSource(r io.Reader) (ShaderSource, error) {
	var vertex, fragment strings.Builder
	var current *strings.Builder

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		switch line {
		case vertexMarker:
			current = &vertex
			continue
		case fragmentMarker:
			current = &fragment
			continue
		}
		if current != nil {
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return ShaderSource{}, err
	}
	return ShaderSource{Vertex: vertex.String(), Fragment: fragment.String()}, nil
}

// WithVersion returns the source with version prepended to both stages.
func (s ShaderSource) WithVersion(version string) ShaderSource {
	return ShaderSource{Vertex: version + s.Vertex, Fragment: version + s.Fragment}
}
