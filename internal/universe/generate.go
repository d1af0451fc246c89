package universe

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// Distributions recognized by Generate.
const (
	DistRandom = "random"
	DistSphere = "sphere"
	DistDisk   = "disk"
	DistGalaxy = "galaxy"
	DistBinary = "binary"
)

// Generate builds an n-particle system laid out by the named distribution.
// scale sets the spatial extent, g the gravitational constant used for
// circular-orbit velocities. The same seed reproduces the same system.
func Generate(dist string, n int, scale, g float64, seed int64) (*particle.System, error) {
	rng := rand.New(rand.NewSource(seed))

	switch dist {
	case DistRandom:
		return genRandom(n, scale, rng), nil
	case DistSphere:
		return genSphere(n, scale, rng), nil
	case DistDisk:
		return genDisk(n, scale, g, rng, 0), nil
	case DistGalaxy:
		// Central black hole carrying most of the mass, stars on circular
		// disk orbits around it.
		return genDisk(n, scale, g, rng, float32(n)*10), nil
	case DistBinary:
		return genBinary(scale, g), nil
	}
	return nil, fmt.Errorf("universe: unknown distribution %q", dist)
}

func genRandom(n int, scale float64, rng *rand.Rand) *particle.System {
	s := particle.NewSystem(0)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{
			float32((rng.Float64()*2 - 1) * scale),
			float32((rng.Float64()*2 - 1) * scale),
			float32((rng.Float64()*2 - 1) * scale),
		}
		vel := mgl32.Vec3{
			float32(rng.NormFloat64() * 0.1),
			float32(rng.NormFloat64() * 0.1),
			float32(rng.NormFloat64() * 0.1),
		}
		s.Add(pos, vel, float32(0.5+rng.Float64()), particle.TypeStar)
	}
	return s
}

// genSphere samples positions uniformly inside a ball of radius scale.
func genSphere(n int, scale float64, rng *rand.Rand) *particle.System {
	s := particle.NewSystem(0)
	for i := 0; i < n; i++ {
		r := scale * math.Cbrt(rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)
		pos := mgl32.Vec3{
			float32(r * math.Sin(phi) * math.Cos(theta)),
			float32(r * math.Sin(phi) * math.Sin(theta)),
			float32(r * math.Cos(phi)),
		}
		s.Add(pos, mgl32.Vec3{}, float32(0.5+rng.Float64()), particle.TypeStar)
	}
	return s
}

// genDisk lays stars on a thin disk with circular-orbit velocities around
// the enclosed central mass. A non-zero centralMass adds a black hole at
// the origin.
func genDisk(n int, scale, g float64, rng *rand.Rand, centralMass float32) *particle.System {
	s := particle.NewSystem(0)

	if centralMass > 0 {
		s.Add(mgl32.Vec3{}, mgl32.Vec3{}, centralMass, particle.TypeBlackHole)
		n--
	}

	for i := 0; i < n; i++ {
		// Uniform disk sample, inner 5% kept clear of the center.
		r := scale * math.Sqrt(0.05+0.95*rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		x := r * math.Cos(theta)
		y := r * math.Sin(theta)
		z := rng.NormFloat64() * scale * 0.02

		mass := 0.5 + rng.Float64()
		central := float64(centralMass)
		if central == 0 {
			// Self-gravitating disk: orbit the mass enclosed by r,
			// approximated by the expected mass density.
			central = float64(n) * (r / scale) * (r / scale)
		}
		v := math.Sqrt(g * central / r)

		s.Add(
			mgl32.Vec3{float32(x), float32(y), float32(z)},
			mgl32.Vec3{float32(-v * math.Sin(theta)), float32(v * math.Cos(theta)), 0},
			float32(mass), particle.TypeStar,
		)
	}
	return s
}

// genBinary is the two-body circular orbit test configuration: a unit mass
// at the origin and a light companion at distance scale with circular
// velocity.
func genBinary(scale, g float64) *particle.System {
	s := particle.NewSystem(0)
	v := math.Sqrt(g / scale)
	s.Add(mgl32.Vec3{}, mgl32.Vec3{}, 1.0, particle.TypeStar)
	s.Add(
		mgl32.Vec3{float32(scale), 0, 0},
		mgl32.Vec3{0, float32(v), 0},
		1e-6, particle.TypePlanet,
	)
	return s
}
