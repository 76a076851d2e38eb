package browser

import "time"

// sleepMs blocks for the given duration. Waits are plain sleeps: once an
// action starts one, it runs to completion.
func sleepMs(ms int) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

// toFloat coerces a page-evaluation result to a float64. Engines return
// numbers as float64; anything else counts as zero.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
