package render

import "github.com/charmbracelet/harmonica"

// barSprings eases each bar toward its target height so 1 kHz z changes
// read smoothly at 60 FPS
type barSprings struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newBarSprings(fps int, frequency, damping float64) barSprings {
	return barSprings{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *barSprings) resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
}

func (s *barSprings) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}
