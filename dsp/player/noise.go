package player

// defaultSeed replaces a zero seed so that output stays reproducible.
const defaultSeed = 0x9E3779B9

// WhiteNoise is a xorwow generator producing uniform noise in [-0.5, 0.5).
type WhiteNoise struct {
	x, y, z, w, v, d uint32
}

// NewWhiteNoise returns a generator for the given seed.
func NewWhiteNoise(seed uint32) *WhiteNoise {
	n := &WhiteNoise{}
	n.Seed(seed)

	return n
}

// Seed restarts the sequence.
func (n *WhiteNoise) Seed(seed uint32) {
	if seed == 0 {
		seed = defaultSeed
	}

	*n = WhiteNoise{
		x: seed,
		y: 362436069,
		z: 521288629,
		w: 88675123,
		v: 5783321,
		d: 6615241,
	}
}

// Uint32 returns the next raw value.
func (n *WhiteNoise) Uint32() uint32 {
	t := n.x ^ (n.x >> 2)
	n.x = n.y
	n.y = n.z
	n.z = n.w
	n.w = n.v
	n.v = (n.v ^ (n.v << 4)) ^ (t ^ (t << 1))
	n.d += 362437

	return n.d + n.v
}

// Float64 returns a uniform value in [0, 1).
func (n *WhiteNoise) Float64() float64 {
	return float64(n.Uint32()) / (1 << 32)
}

// Next returns a uniform value in [-0.5, 0.5).
func (n *WhiteNoise) Next() float64 {
	return n.Float64() - 0.5
}

// GaussianNoise produces normally distributed noise with the Box-Muller
// transform over a xorwow source.
type GaussianNoise struct {
	src      WhiteNoise
	stddev   float64
	spare    float64
	hasSpare bool
}

// NewGaussianNoise returns a generator with zero mean and the given standard deviation.
func NewGaussianNoise(seed uint32, stddev float64) *GaussianNoise {
	g := &GaussianNoise{stddev: stddev}
	g.src.Seed(seed)

	return g
}

// Next returns the next sample.
func (g *GaussianNoise) Next() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare * g.stddev
	}

	u1 := 1 - g.src.Float64() // (0, 1]
	u2 := g.src.Float64()

	r2 := -2 * mathLog(u1)
	if r2 < 0 {
		r2 = 0
	}

	r := mathSqrt(r2)
	s, c := sincos2Pi(u2)

	g.spare = r * s
	g.hasSpare = true

	return r * c * g.stddev
}

// Impulse emits a single sample of the given amplitude followed by silence.
type Impulse struct {
	Amplitude float64
	fired     bool
}

// NewImpulse returns an impulse source.
func NewImpulse(amplitude float64) *Impulse {
	return &Impulse{Amplitude: amplitude}
}

// Next returns the amplitude once, then 0.
func (i *Impulse) Next() float64 {
	if i.fired {
		return 0
	}

	i.fired = true

	return i.Amplitude
}

// Reset re-arms the impulse.
func (i *Impulse) Reset() {
	i.fired = false
}
