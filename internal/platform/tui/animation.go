package tui

import (
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-racetrack/internal/track"
)

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in_quad":     ease.InQuad,
	"out_quad":    ease.OutQuad,
	"in_out_quad": ease.InOutQuad,
	"out_cubic":   ease.OutCubic,
}

// Easing looks an easing function up by its config name. Unknown names
// fall back to linear.
func Easing(name string) ease.TweenFunc {
	if fn, ok := easings[strings.ToLower(name)]; ok {
		return fn
	}
	return ease.Linear
}

// Animation eases a car along the cells of its route.
type Animation struct {
	Seat  int
	route []track.Position
	tween *gween.Tween
}

// NewAnimation animates seat along route, spending perCell on each step.
func NewAnimation(seat int, route []track.Position, perCell time.Duration, easing ease.TweenFunc) *Animation {
	steps := len(route) - 1
	if steps < 1 {
		steps = 1
	}
	duration := float32(perCell.Seconds()) * float32(steps)
	return &Animation{
		Seat:  seat,
		route: route,
		tween: gween.New(0, float32(len(route)-1), duration, easing),
	}
}

// Update advances the animation by dt and returns where the car is drawn
// and whether it arrived.
func (a *Animation) Update(dt time.Duration) (track.Position, bool) {
	if len(a.route) == 0 {
		return track.Position{}, true
	}
	v, done := a.tween.Update(float32(dt.Seconds()))
	if done {
		return a.route[len(a.route)-1], true
	}
	i := int(v + 0.5)
	if i < 0 {
		i = 0
	}
	if i >= len(a.route) {
		i = len(a.route) - 1
	}
	return a.route[i], false
}
