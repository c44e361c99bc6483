package core

// LCG is a linear congruential generator used for cheap stratification
// jitter. It is much weaker than the main sampler and must only be used
// for offsets inside ray-marching steps.
type LCG struct {
	state uint32
}

// NewLCG seeds a congruential stream from a hashed seed
func NewLCG(seed uint32) LCG {
	return LCG{state: HashUint32(seed ^ 0xbad5eed)}
}

// NewLCGForSample seeds a stream unique to a pixel and sample index
func NewLCGForSample(x, y, sample int) LCG {
	return NewLCG(HashUint32(uint32(x)) ^ HashUint32(uint32(y)<<16) ^ HashUint32(uint32(sample)*0x9e3779b9))
}

// Step advances the stream and returns a value in [0, 1)
func (l *LCG) Step() float64 {
	l.state = 1103515245*l.state + 12345
	return float64(l.state) * (1.0 / 4294967296.0)
}

// HashUint32 is Bob Jenkins' one-at-a-time style integer finaliser
func HashUint32(k uint32) uint32 {
	a := k
	b := uint32(0xdeadbeef)
	c := uint32(0xdeadbeef)

	c ^= b
	c -= b<<14 | b>>18
	a ^= c
	a -= c<<11 | c>>21
	b ^= a
	b -= a<<25 | a>>7
	c ^= b
	c -= b<<16 | b>>16
	a ^= c
	a -= c<<4 | c>>28
	b ^= a
	b -= a<<14 | a>>18
	c ^= b
	c -= b<<24 | b>>8

	return c
}
