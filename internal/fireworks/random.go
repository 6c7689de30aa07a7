package fireworks

import (
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/fireworks/internal/config"
)

func randomBetween(min, max float64) float64 {
	return rand.Float64()*(max-min) + min
}

func randomIn(r config.Range) float64 {
	return randomBetween(r.Min, r.Max)
}

func randomDuration(r config.DurationRange) time.Duration {
	return time.Duration(randomBetween(float64(r.Min), float64(r.Max)))
}
