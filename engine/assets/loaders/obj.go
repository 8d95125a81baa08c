package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/blitz/engine/core"
)

var ErrMalformedOBJ = errors.New("malformed obj")

// MeshData is an indexed triangle mesh. Every distinct position/uv/normal
// combination of the file is one vertex. Normals and UVs are empty when the
// file does not provide them for every face corner.
type MeshData struct {
	Indices   []int
	Positions []float32
	Normals   []float32
	UVs       []float32
}

func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

// corner of a face: indices into the file's v, vt and vn lists, -1 when absent.
type corner struct {
	v, vt, vn int
}

type objDecoder struct {
	line      int
	positions []float32
	uvs       []float32
	normals   []float32
	faces     [][]corner
}

// ParseOBJ decodes the geometry of a Wavefront OBJ file. Polygons are
// triangulated as fans around their first corner.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	dec := &objDecoder{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		dec.line++
		if err := dec.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dec.build(), nil
}

func (dec *objDecoder) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedOBJ, dec.line, fmt.Sprintf(format, args...))
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		return dec.parseFloats(fields[1:], 3, &dec.positions)
	case "vt":
		return dec.parseFloats(fields[1:], 2, &dec.uvs)
	case "vn":
		return dec.parseFloats(fields[1:], 3, &dec.normals)
	case "f":
		return dec.parseFace(fields[1:])
	case "o", "g", "s", "usemtl", "mtllib":
		core.LogDebug("obj line %d: ignoring '%s'", dec.line, fields[0])
	default:
		core.LogWarn("obj line %d: unsupported statement '%s'", dec.line, fields[0])
	}
	return nil
}

func (dec *objDecoder) parseFloats(fields []string, n int, out *[]float32) error {
	if len(fields) < n {
		return dec.errorf("expected %d values, got %d", n, len(fields))
	}
	for _, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.errorf("%s", err)
		}
		*out = append(*out, float32(val))
	}
	return nil
}

// resolve turns a 1-based or negative (relative) OBJ index into a 0-based one.
func (dec *objDecoder) resolve(field string, count int) (int, error) {
	val, err := strconv.Atoi(field)
	if err != nil {
		return 0, dec.errorf("%s", err)
	}
	idx := val - 1
	if val < 0 {
		idx = count + val
	}
	if val == 0 || idx < 0 || idx >= count {
		return 0, dec.errorf("index %d out of range (%d entries)", val, count)
	}
	return idx, nil
}

// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.errorf("face with %d corners", len(fields))
	}
	face := make([]corner, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		c := corner{vt: -1, vn: -1}

		var err error
		if c.v, err = dec.resolve(parts[0], len(dec.positions)/3); err != nil {
			return err
		}
		if len(parts) > 1 && parts[1] != "" {
			if c.vt, err = dec.resolve(parts[1], len(dec.uvs)/2); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c.vn, err = dec.resolve(parts[2], len(dec.normals)/3); err != nil {
				return err
			}
		}
		face[i] = c
	}
	dec.faces = append(dec.faces, face)
	return nil
}

func (dec *objDecoder) build() *MeshData {
	hasUVs, hasNormals := len(dec.faces) > 0, len(dec.faces) > 0
	for _, face := range dec.faces {
		for _, c := range face {
			hasUVs = hasUVs && c.vt >= 0
			hasNormals = hasNormals && c.vn >= 0
		}
	}

	mesh := &MeshData{}
	seen := make(map[corner]int)
	emit := func(c corner) {
		if !hasUVs {
			c.vt = -1
		}
		if !hasNormals {
			c.vn = -1
		}
		if idx, ok := seen[c]; ok {
			mesh.Indices = append(mesh.Indices, idx)
			return
		}
		idx := len(seen)
		seen[c] = idx
		mesh.Indices = append(mesh.Indices, idx)
		mesh.Positions = append(mesh.Positions, dec.positions[c.v*3:c.v*3+3]...)
		if hasUVs {
			mesh.UVs = append(mesh.UVs, dec.uvs[c.vt*2:c.vt*2+2]...)
		}
		if hasNormals {
			mesh.Normals = append(mesh.Normals, dec.normals[c.vn*3:c.vn*3+3]...)
		}
	}

	for _, face := range dec.faces {
		for i := 1; i+1 < len(face); i++ {
			emit(face[0])
			emit(face[i])
			emit(face[i+1])
		}
	}
	return mesh
}

type OBJLoader struct{}

func (l *OBJLoader) Load(path string) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     ResourceTypeMesh,
		DataSize: uint64(len(mesh.Positions)+len(mesh.Normals)+len(mesh.UVs)) * 4,
		Data:     mesh,
	}, nil
}

func (l *OBJLoader) Unload(*Resource) error {
	return nil
}
