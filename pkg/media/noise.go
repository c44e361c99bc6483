package media

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// fBm octave parameters; the odd lacunarity keeps octaves from lining up
const (
	noiseLacunarity = 2.31
	noiseGain       = 0.53
)

// ValueNoise returns smooth lattice noise in [0, 1]
func ValueNoise(p core.Vec3, seed uint32) float64 {
	ix, iy, iz := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	fx, fy, fz := p.X-ix, p.Y-iy, p.Z-iz
	x, y, z := int32(ix), int32(iy), int32(iz)

	// quintic fade
	ux, uy, uz := fade(fx), fade(fy), fade(fz)

	c000 := latticeValue(x, y, z, seed)
	c100 := latticeValue(x+1, y, z, seed)
	c010 := latticeValue(x, y+1, z, seed)
	c110 := latticeValue(x+1, y+1, z, seed)
	c001 := latticeValue(x, y, z+1, seed)
	c101 := latticeValue(x+1, y, z+1, seed)
	c011 := latticeValue(x, y+1, z+1, seed)
	c111 := latticeValue(x+1, y+1, z+1, seed)

	return lerp(
		lerp(lerp(c000, c100, ux), lerp(c010, c110, ux), uy),
		lerp(lerp(c001, c101, ux), lerp(c011, c111, ux), uy),
		uz,
	)
}

// FBM sums octaves of ValueNoise. The result is normalized to [0, 1].
func FBM(p core.Vec3, octaves int, seed uint32) float64 {
	value := 0.0
	amplitude := 0.5
	total := 0.0

	for i := 0; i < octaves; i++ {
		value += amplitude * ValueNoise(p, seed+uint32(i))
		total += amplitude
		p = p.Multiply(noiseLacunarity)
		amplitude *= noiseGain
	}

	if total == 0 {
		return 0
	}
	return value / total
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func latticeValue(x, y, z int32, seed uint32) float64 {
	h := core.HashUint32(uint32(x)*0x8da6b343 ^ uint32(y)*0xd8163841 ^ uint32(z)*0xcb1ab31f ^ seed)
	return float64(h) / float64(math.MaxUint32)
}
