package volume

import "github.com/df07/go-volumetric-raytracer/pkg/core"

// PathState is the per-path state the volume integrator reads and advances.
// It belongs to a single path and must never be shared between goroutines.
type PathState struct {
	Bounce       int      // total bounces so far
	VolumeBounce int      // volume scattering bounces so far
	Jitter       core.LCG // stratification jitter stream for ray marching
	Stack        *Stack   // volumes enclosing the current vertex
}

// Radiance receives light contributions found along a path
type Radiance interface {
	// AccumEmission adds emission weighted by the path throughput
	AccumEmission(throughput, emission core.Vec3, bounce int)
}

// PathRadiance splits contributions into directly visible (bounce 0) and
// indirect light
type PathRadiance struct {
	Direct   core.Vec3
	Indirect core.Vec3
}

// AccumEmission implements Radiance
func (L *PathRadiance) AccumEmission(throughput, emission core.Vec3, bounce int) {
	L.add(throughput.MultiplyVec(emission), bounce)
}

// AccumLight adds a light sample contribution already weighted by its pdf
func (L *PathRadiance) AccumLight(throughput, contribution core.Vec3, bounce int) {
	L.add(throughput.MultiplyVec(contribution), bounce)
}

func (L *PathRadiance) add(value core.Vec3, bounce int) {
	if bounce == 0 {
		L.Direct = L.Direct.Add(value)
	} else {
		L.Indirect = L.Indirect.Add(value)
	}
}

// Sum returns the total radiance
func (L *PathRadiance) Sum() core.Vec3 {
	return L.Direct.Add(L.Indirect)
}
