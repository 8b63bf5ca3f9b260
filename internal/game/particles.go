package game

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/lorawan-deck/internal/config"
)

// particle drifts across the background and wraps around horizontally.
type particle struct {
	x, y   float64
	vx, vy float64
	size   float64
}

func newParticles(n int, w, h float64, rng *rand.Rand) []particle {
	ps := make([]particle, n)
	for i := range ps {
		ps[i] = particle{
			x:    rng.Float64() * w,
			y:    rng.Float64() * h,
			vx:   (rng.Float64() - 0.5) * config.ParticleSpeed,
			vy:   (rng.Float64() - 0.5) * config.ParticleSpeed,
			size: rng.Float64() * 2,
		}
	}
	return ps
}

func updateParticles(ps []particle, w, h float64) {
	for i := range ps {
		p := &ps[i]
		p.x += p.vx
		p.y += p.vy
		if p.x < 0 {
			p.x = w
		}
		if p.x > w {
			p.x = 0
		}
		if p.y < 0 {
			p.y = h
		}
		if p.y > h {
			p.y = 0
		}
	}
}

func drawParticles(screen *ebiten.Image, ps []particle) {
	particleColor := color.NRGBA{R: 148, G: 163, B: 184, A: 160}
	for _, p := range ps {
		vector.DrawFilledCircle(screen, float32(p.x), float32(p.y), float32(p.size+0.5), particleColor, true)
	}
}
