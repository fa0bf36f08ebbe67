// Package obj reads Wavefront OBJ geometry into flat GPU-ready buffers.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goobj/internal/logger"
	"go.uber.org/zap"
)

var (
	ErrCannotOpen      = errors.New("obj: cannot open file")
	ErrIndexOutOfRange = errors.New("obj: face index out of range")
	ErrMalformed       = errors.New("obj: malformed line")
)

// maxLine bounds a single OBJ line; large polygons can exceed bufio's 64KB default
const maxLine = 16 * 1024 * 1024

// Option configures a Parser
type Option func(*Parser)

// WithExtraCoords keeps every numeric coordinate of a vertex line (for
// example the optional w) instead of only x, y and z. The vertex buffer then
// loses its stride-3 guarantee.
func WithExtraCoords(keep bool) Option {
	return func(p *Parser) {
		p.extraCoords = keep
	}
}

// Parser loads OBJ files. A Parser holds the data of the last successful
// load and is not safe for concurrent use.
type Parser struct {
	data        ObjectData
	stats       Stats
	extraCoords bool
}

// NewParser creates a parser with the given options
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a convenience wrapper that loads a single file
func Parse(path string, opts ...Option) (ObjectData, error) {
	p := NewParser(opts...)
	if err := p.LoadFile(path); err != nil {
		return ObjectData{}, err
	}
	return p.Data(), nil
}

// LoadFile reads and validates path. On any failure the previously loaded
// data is kept.
func (p *Parser) LoadFile(path string) error {
	previous, previousStats := p.data, p.stats
	p.data, p.stats = ObjectData{}, Stats{}

	if err := p.ReadData(path); err != nil {
		p.data, p.stats = previous, previousStats
		return err
	}
	if err := p.ValidationData(); err != nil {
		p.data, p.stats = previous, previousStats
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("obj loaded",
		zap.String("path", path),
		zap.Int("vertices", p.data.VertexCount()),
		zap.Int("edges", p.data.EdgeCount()),
		zap.Int("lines", p.stats.Lines),
		zap.Int("comments", p.stats.Comments),
		zap.Int("ignored", p.stats.Ignored))
	return nil
}

// ReadData opens path and parses it without validating face indices
func (p *Parser) ReadData(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrCannotOpen, path, err)
	}
	defer file.Close()

	if err := p.Decode(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode parses OBJ text from r, replacing the current data. The input is
// scanned twice: once to size the buffers, then to fill them.
func (p *Parser) Decode(r io.ReadSeeker) error {
	vertexLines, faceLines, err := prescan(r)
	if err != nil {
		return err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind input: %w", err)
	}

	data := ObjectData{
		Vertices: make([]float32, 0, vertexLines*3),
		Faces:    make([]uint32, 0, faceLines*6),
	}
	var stats Stats

	scanner := newScanner(r)
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			stats.Blank++
		case line[0] == '#':
			stats.Comments++
		case line[0] == 'v':
			n, err := p.parseVertex(&data, line[1:])
			if err != nil {
				return fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			if n == 0 {
				stats.Ignored++
			} else {
				stats.VertexLines++
			}
		case line[0] == 'f':
			if err := parseFace(&data, line[1:]); err != nil {
				return fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			stats.FaceLines++
		default:
			stats.Ignored++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	p.data, p.stats = data, stats
	return nil
}

// ValidationData checks that every face entry references a loaded vertex
func (p *Parser) ValidationData() error {
	count := p.data.VertexCount()
	for i, idx := range p.data.Faces {
		if int(idx) >= count {
			return fmt.Errorf("entry %d references vertex %d of %d: %w", i, idx, count, ErrIndexOutOfRange)
		}
	}
	return nil
}

// Data returns the parsed geometry. The buffers are shared with the parser.
func (p *Parser) Data() ObjectData {
	return p.data
}

// Stats returns the line counts of the last successful parse
func (p *Parser) Stats() Stats {
	return p.stats
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return scanner
}

func prescan(r io.Reader) (vertexLines, faceLines int, err error) {
	scanner := newScanner(r)
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")
		switch {
		case strings.HasPrefix(line, "v ") || strings.HasPrefix(line, "v\t"):
			vertexLines++
		case strings.HasPrefix(line, "f"):
			faceLines++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("failed to scan input: %w", err)
	}
	return vertexLines, faceLines, nil
}

// parseVertex appends the leading run of numbers on a vertex line. Texture
// and normal lines ("vt", "vn") start with a letter and contribute nothing.
func (p *Parser) parseVertex(data *ObjectData, rest string) (int, error) {
	n := 0
	for _, field := range strings.Fields(rest) {
		if !p.extraCoords && n == 3 {
			break
		}
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			break
		}
		data.Vertices = append(data.Vertices, float32(v))
		n++
	}

	if !p.extraCoords && n > 0 && n < 3 {
		return 0, fmt.Errorf("vertex has %d coordinates: %w", n, ErrMalformed)
	}
	return n, nil
}

// parseFace appends the polygon as an edge list: the first index, every
// following index twice, then the first index again to close the loop.
func parseFace(data *ObjectData, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("face without indices: %w", ErrMalformed)
	}

	count := len(data.Vertices) / 3
	first, ok := faceIndex(fields[0])
	if !ok {
		return fmt.Errorf("face index %q: %w", fields[0], ErrMalformed)
	}
	head, err := resolve(first, count)
	if err != nil {
		return err
	}
	data.Faces = append(data.Faces, head)

	for _, field := range fields[1:] {
		idx, ok := faceIndex(field)
		if !ok {
			break
		}
		v, err := resolve(idx, count)
		if err != nil {
			return err
		}
		data.Faces = append(data.Faces, v, v)
	}

	data.Faces = append(data.Faces, head)
	return nil
}

// faceIndex reads the vertex part of "v", "v/vt", "v//vn" or "v/vt/vn"
func faceIndex(field string) (int, bool) {
	if slash := strings.IndexByte(field, '/'); slash >= 0 {
		field = field[:slash]
	}
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// resolve converts a 1-based (or negative, relative) OBJ index to 0-based
func resolve(idx, count int) (uint32, error) {
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx < 1 || uint64(idx-1) > math.MaxUint32 {
		return 0, fmt.Errorf("face index %d with %d vertices: %w", idx, count, ErrIndexOutOfRange)
	}
	return uint32(idx - 1), nil
}
