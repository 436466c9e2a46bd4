package main

import "math"

// sample is the demo value: a small game-entity record whose fields drift
// over time so change highlighting has something to chew on.
type sample struct {
	step int
}

func (s *sample) advance() {
	s.step++
}

func (s *sample) snapshot() map[string]any {
	t := float64(s.step) / 20
	cooldown := 0
	if s.step%160 < 40 {
		cooldown = 40 - s.step%160
	}
	return map[string]any{
		"name":   "aria",
		"health": 18 + math.Round(2*math.Sin(t)),
		"position": map[string]any{
			"x": math.Round(100 * math.Cos(t/3)),
			"y": 64,
			"z": math.Round(100 * math.Sin(t/3)),
		},
		"velocity": map[string]any{
			"x": math.Round(10*math.Cos(t)) / 10,
			"z": math.Round(10*math.Sin(t)) / 10,
		},
		"cooldowns": []any{0, cooldown, 12},
		"effects": []any{
			map[string]any{"id": "speed", "ticks": 200 - s.step%200},
			map[string]any{"id": "glow", "ticks": 400 - s.step%400},
		},
		"onGround": s.step%80 < 60,
		"tags":     []any{"debug", "demo"},
	}
}
