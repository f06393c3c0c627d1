package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidPLY is returned for malformed or unsupported PLY files
var ErrInvalidPLY = errors.New("loaders: invalid PLY file")

// PLYHeader is the parsed header of a PLY file
type PLYHeader struct {
	Format      string // "ascii", "binary_little_endian" or "binary_big_endian"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
	Others      []PLYElement // Elements other than vertex and face, in file order
}

// PLYElement is an element block the loader skips over
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty is a property definition from the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type for lists
	IsList   bool
	ListType string // Type of the list count
}

// Mesh holds triangle positions read from a PLY file
type Mesh struct {
	Vertices []core.Vec3
	Faces    [][3]int // Vertex indices per triangle
}

// LoadPLY reads a PLY mesh from disk
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads vertex positions and faces. Polygons with more than three
// vertices are split into a triangle fan; all other properties are ignored.
func ParsePLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		values = &asciiReader{r: br}
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	mesh := &Mesh{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([][3]int, 0, header.FaceCount),
	}
	if err := readVertices(values, header, mesh); err != nil {
		return nil, err
	}
	if err := readFaces(values, header, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line. Elements
// must appear as vertex then face; other elements are only allowed after them.
func parsePLYHeader(br *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current string

	first, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(first) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ends before end_header", ErrInvalidPLY)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.VertexProps == nil {
				return nil, fmt.Errorf("%w: no vertex element", ErrInvalidPLY)
			}
			return header, nil
		case "comment", "obj_info":
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad format line", ErrInvalidPLY)
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad element line", ErrInvalidPLY)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			current = parts[1]
			switch current {
			case "vertex":
				if header.FaceProps != nil || len(header.Others) > 0 {
					return nil, fmt.Errorf("%w: vertex element must come first", ErrInvalidPLY)
				}
				header.VertexCount = count
				header.VertexProps = []PLYProperty{}
			case "face":
				if header.VertexProps == nil || len(header.Others) > 0 {
					return nil, fmt.Errorf("%w: face element must follow vertex", ErrInvalidPLY)
				}
				header.FaceCount = count
				header.FaceProps = []PLYProperty{}
			default:
				header.Others = append(header.Others, PLYElement{Name: current, Count: count})
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			switch current {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			case "":
				return nil, fmt.Errorf("%w: property before element", ErrInvalidPLY)
			default:
				last := &header.Others[len(header.Others)-1]
				last.Props = append(last.Props, prop)
			}
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}
}

// parsePLYProperty parses the words after "property"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		if typeSize(parts[1]) == 0 || typeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: unknown list type in %q", ErrInvalidPLY, strings.Join(parts, " "))
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	if len(parts) != 2 || typeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: bad property %q", ErrInvalidPLY, strings.Join(parts, " "))
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// typeSize returns the byte size of a PLY scalar type, or 0 if unknown
func typeSize(t string) int {
	switch t {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

func readVertices(values valueReader, header *PLYHeader, mesh *Mesh) error {
	xi, yi, zi := -1, -1, -1
	for i, prop := range header.VertexProps {
		switch prop.Name {
		case "x":
			xi = i
		case "y":
			yi = i
		case "z":
			zi = i
		}
	}
	if xi < 0 || yi < 0 || zi < 0 {
		return fmt.Errorf("%w: vertex element needs x, y and z", ErrInvalidPLY)
	}

	row := make([]float64, len(header.VertexProps))
	for v := 0; v < header.VertexCount; v++ {
		for i, prop := range header.VertexProps {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return fmt.Errorf("vertex %d: %w", v, err)
				}
				continue
			}
			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", v, err)
			}
			row[i] = value
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(row[xi], row[yi], row[zi]))
	}
	return nil
}

func readFaces(values valueReader, header *PLYHeader, mesh *Mesh) error {
	if header.FaceCount == 0 {
		return nil
	}

	for f := 0; f < header.FaceCount; f++ {
		var polygon []int
		for _, prop := range header.FaceProps {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipProperty(values, prop); err != nil {
					return fmt.Errorf("face %d: %w", f, err)
				}
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d: %w", f, err)
			}
			polygon = make([]int, int(count))
			for i := range polygon {
				index, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("face %d: %w", f, err)
				}
				if index < 0 || int(index) >= len(mesh.Vertices) {
					return fmt.Errorf("%w: face %d references vertex %v", ErrInvalidPLY, f, index)
				}
				polygon[i] = int(index)
			}
		}

		if len(polygon) < 3 {
			return fmt.Errorf("%w: face %d has %d vertices", ErrInvalidPLY, f, len(polygon))
		}
		for i := 1; i+1 < len(polygon); i++ {
			mesh.Faces = append(mesh.Faces, [3]int{polygon[0], polygon[i], polygon[i+1]})
		}
	}
	return nil
}

func skipProperty(values valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipList(values valueReader, prop PLYProperty) error {
	count, err := values.read(prop.ListType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := values.read(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// valueReader decodes one scalar at a time in the file's encoding
type valueReader interface {
	read(plyType string) (float64, error)
}

// asciiReader reads whitespace separated values across lines
type asciiReader struct {
	r      *bufio.Reader
	fields []string
}

func (a *asciiReader) read(plyType string) (float64, error) {
	for len(a.fields) == 0 {
		line, err := a.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, fmt.Errorf("%w: unexpected end of data", ErrInvalidPLY)
		}
		a.fields = strings.Fields(line)
	}

	field := a.fields[0]
	a.fields = a.fields[1:]
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s value %q", ErrInvalidPLY, plyType, field)
	}
	return value, nil
}

// binaryReader reads fixed-size values in the given byte order
type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(plyType string) (float64, error) {
	size := typeSize(plyType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidPLY, plyType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, fmt.Errorf("%w: unexpected end of data", ErrInvalidPLY)
	}

	switch plyType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}
