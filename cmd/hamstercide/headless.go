package main

import (
	"time"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/config"
	"github.com/lixenwraith/hamstercide/device"
	"github.com/lixenwraith/hamstercide/game"
	"github.com/lixenwraith/hamstercide/target"
	"github.com/lixenwraith/hamstercide/vmath"
)

// headlessRound caps an unlimited round when nobody is watching
const headlessRound = 60 * time.Second

// swingBot stands in for a player: aims at exposed targets and swings on a cadence
type swingBot struct {
	session  *game.Session
	driver   *device.SimDriver
	rng      *vmath.FastRand
	accuracy float64
	cooldown int
	minRest  int
	jitter   int
}

func newSwingBot(s *game.Session, d *device.SimDriver, seed uint64, tickRate float64) *swingBot {
	ms := func(n float64) int { return int(n * tickRate / 1000) }
	return &swingBot{
		session:  s,
		driver:   d,
		rng:      vmath.NewFastRand(seed ^ 0xb0b5),
		accuracy: 0.85,
		minRest:  ms(100),
		jitter:   ms(300) + 1,
	}
}

// step runs before each session tick
func (b *swingBot) step() {
	if b.driver.Swinging() {
		return
	}
	if b.cooldown > 0 {
		b.cooldown--
		return
	}

	grid := b.session.Grid
	var exposed []int
	for id := 0; id < grid.Len(); id++ {
		switch b.session.TargetState(id) {
		case target.Rising, target.Raised:
			exposed = append(exposed, id)
		}
	}

	if len(exposed) == 0 {
		b.cooldown = b.minRest
		return
	}
	aim := exposed[b.rng.Intn(len(exposed))]
	if b.rng.Float64() >= b.accuracy {
		aim = b.rng.Intn(grid.Len()) // sloppy swing, may land on the board
	}
	p := grid.Target(aim).Position()
	b.driver.MoveTo(p.X, p.Y)
	b.driver.Swing()
	b.cooldown = b.minRest + b.rng.Intn(b.jitter)
}

// runHeadless plays one round on a simulated clock at full speed and returns
// the final counters
func runHeadless(cfg config.Config) (string, error) {
	cfg.Audio.Enabled = false

	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	a, err := newApp(cfg, mock, true)
	if err != nil {
		return "", err
	}
	if err := a.start(); err != nil {
		return "", err
	}

	round := cfg.Round.Duration.Std()
	if round <= 0 {
		round = headlessRound
	}
	interval := cfg.HapticInterval()
	dt := interval.Seconds()
	ticks := int(round / interval)

	bot := newSwingBot(a.session, a.driver, cfg.Grid.Seed, cfg.Haptic.RateHz)
	// two extra ticks: the first past the deadline publishes round end
	for i := 0; i < ticks+2; i++ {
		bot.step()
		a.session.Tick(dt)
		mock.Advance(interval)
	}

	a.stop()
	return a.summary(), nil
}
