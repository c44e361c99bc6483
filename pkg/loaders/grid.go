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
)

// ErrInvalidGrid is returned for malformed density grid data
var ErrInvalidGrid = errors.New("invalid density grid")

// gridMagic starts the header line: "DENSITY nx ny nz\n"
const gridMagic = "DENSITY"

// maxGridVoxels bounds allocations for corrupt headers
const maxGridVoxels = 512 * 512 * 512

// DensityGrid is a voxel density volume, stored x fastest, then y, then z
type DensityGrid struct {
	Nx, Ny, Nz int
	Values     []float32
}

// Index returns the offset of voxel (x, y, z) in Values
func (g *DensityGrid) Index(x, y, z int) int {
	return (z*g.Ny+y)*g.Nx + x
}

// Float64 returns a copy of the densities as float64
func (g *DensityGrid) Float64() []float64 {
	out := make([]float64, len(g.Values))
	for i, v := range g.Values {
		out[i] = float64(v)
	}
	return out
}

// LoadDensityGrid loads a density grid file
func LoadDensityGrid(filename string) (*DensityGrid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open density grid: %w", err)
	}
	defer file.Close()

	return ReadDensityGrid(file)
}

// ReadDensityGrid parses a text header line "DENSITY nx ny nz" followed by
// nx*ny*nz little-endian float32 densities
func ReadDensityGrid(r io.Reader) (*DensityGrid, error) {
	reader := bufio.NewReader(r)

	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrInvalidGrid, err)
	}

	grid, err := parseGridHeader(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}

	grid.Values = make([]float32, grid.Nx*grid.Ny*grid.Nz)
	if err := binary.Read(reader, binary.LittleEndian, grid.Values); err != nil {
		return nil, fmt.Errorf("%w: failed to read %d voxels: %v", ErrInvalidGrid, len(grid.Values), err)
	}

	for i, v := range grid.Values {
		if v < 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("%w: voxel %d has density %g", ErrInvalidGrid, i, v)
		}
	}

	return grid, nil
}

func parseGridHeader(line string) (*DensityGrid, error) {
	parts := strings.Fields(line)
	if len(parts) != 4 || parts[0] != gridMagic {
		return nil, fmt.Errorf("%w: expected %q header, got %q", ErrInvalidGrid, gridMagic+" nx ny nz", line)
	}

	var dims [3]int
	for i := range dims {
		n, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad dimension %q", ErrInvalidGrid, parts[i+1])
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: dimension %d must be positive", ErrInvalidGrid, n)
		}
		dims[i] = n
	}

	if dims[0]*dims[1]*dims[2] > maxGridVoxels {
		return nil, fmt.Errorf("%w: %dx%dx%d grid is too large", ErrInvalidGrid, dims[0], dims[1], dims[2])
	}

	return &DensityGrid{Nx: dims[0], Ny: dims[1], Nz: dims[2]}, nil
}

// WriteDensityGrid writes a grid in the format read by ReadDensityGrid
func WriteDensityGrid(w io.Writer, grid *DensityGrid) error {
	if len(grid.Values) != grid.Nx*grid.Ny*grid.Nz {
		return fmt.Errorf("%w: %d values for %dx%dx%d grid", ErrInvalidGrid, len(grid.Values), grid.Nx, grid.Ny, grid.Nz)
	}

	writer := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(writer, "%s %d %d %d\n", gridMagic, grid.Nx, grid.Ny, grid.Nz); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.LittleEndian, grid.Values); err != nil {
		return err
	}
	return writer.Flush()
}
