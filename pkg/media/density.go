package media

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// Density provides a spatially-varying scale for a medium's coefficients
type Density interface {
	// At returns the non-negative density at a world-space point
	At(p core.Vec3) float64

	// Uniform reports whether At returns the same value everywhere
	Uniform() bool
}

// ConstantDensity is the same everywhere
type ConstantDensity struct {
	Value float64
}

// At implements Density
func (c ConstantDensity) At(p core.Vec3) float64 {
	return c.Value
}

// Uniform implements Density
func (c ConstantDensity) Uniform() bool {
	return true
}

// HeightFalloff decays exponentially above a base height:
// Scale * exp(-Falloff * (y - BaseY)), capped at Scale below BaseY.
type HeightFalloff struct {
	Scale   float64
	BaseY   float64
	Falloff float64
}

// At implements Density
func (h HeightFalloff) At(p core.Vec3) float64 {
	dy := math.Max(0, p.Y-h.BaseY)
	return h.Scale * math.Exp(-h.Falloff*dy)
}

// Uniform implements Density
func (h HeightFalloff) Uniform() bool {
	return h.Falloff == 0
}

// CloudDensity is fractal noise shaped by a soft sphere
type CloudDensity struct {
	Center    core.Vec3
	Radius    float64
	Scale     float64 // noise frequency in world units
	Coverage  float64 // noise values below this are empty
	Intensity float64
	Octaves   int
	Seed      uint32
}

// At implements Density
func (c CloudDensity) At(p core.Vec3) float64 {
	r := p.Subtract(c.Center).Length() / c.Radius
	if r >= 1 {
		return 0
	}

	n := FBM(p.Multiply(c.Scale), c.Octaves, c.Seed) - c.Coverage
	if n <= 0 {
		return 0
	}

	// fade towards the sphere boundary
	shape := 1 - r*r
	return c.Intensity * n * shape
}

// Uniform implements Density
func (c CloudDensity) Uniform() bool {
	return false
}

// GridDensity interpolates voxel values over an axis-aligned box.
// Voxel centres sit at cell centres; values are stored x fastest, then y, then z.
type GridDensity struct {
	Bounds     core.AABB
	Nx, Ny, Nz int
	Values     []float64
	Scale      float64
}

// NewGridDensity creates a grid over bounds. len(values) must be nx*ny*nz.
func NewGridDensity(bounds core.AABB, nx, ny, nz int, values []float64, scale float64) *GridDensity {
	return &GridDensity{Bounds: bounds, Nx: nx, Ny: ny, Nz: nz, Values: values, Scale: scale}
}

// At implements Density with trilinear interpolation; points outside the
// bounds are empty
func (g *GridDensity) At(p core.Vec3) float64 {
	if !g.Bounds.Contains(p) {
		return 0
	}

	local := g.Bounds.Local(p)
	x, x0, x1 := gridCoord(local.X, g.Nx)
	y, y0, y1 := gridCoord(local.Y, g.Ny)
	z, z0, z1 := gridCoord(local.Z, g.Nz)

	c00 := lerp(g.voxel(x0, y0, z0), g.voxel(x1, y0, z0), x)
	c10 := lerp(g.voxel(x0, y1, z0), g.voxel(x1, y1, z0), x)
	c01 := lerp(g.voxel(x0, y0, z1), g.voxel(x1, y0, z1), x)
	c11 := lerp(g.voxel(x0, y1, z1), g.voxel(x1, y1, z1), x)

	return g.Scale * lerp(lerp(c00, c10, y), lerp(c01, c11, y), z)
}

// Uniform implements Density
func (g *GridDensity) Uniform() bool {
	return false
}

func (g *GridDensity) voxel(x, y, z int) float64 {
	return g.Values[(z*g.Ny+y)*g.Nx+x]
}

// gridCoord maps a normalized coordinate to the two neighbouring voxel
// indices and the blend factor between them, clamping at the edges
func gridCoord(u float64, n int) (float64, int, int) {
	f := u*float64(n) - 0.5
	i0 := int(math.Floor(f))
	frac := f - float64(i0)

	i1 := min(max(i0+1, 0), n-1)
	i0 = min(max(i0, 0), n-1)
	return frac, i0, i1
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
