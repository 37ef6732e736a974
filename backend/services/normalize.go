// ABOUTME: Shared normalize-to-100 utility for percentage splits
// ABOUTME: Rounds weights to integers and assigns the rounding residual to the largest bucket

package services

import "math"

// NormalizeToHundred scales non-negative weights to integer percentages that
// sum to exactly 100. Each share is rounded and the residual is added to the
// largest bucket (first one on ties). All-zero input yields all zeros.
func NormalizeToHundred(weights []float64) []int {
	out := make([]int, len(weights))
	clamped := make([]float64, len(weights))

	var total float64
	for i, w := range weights {
		clamped[i] = math.Max(w, 0)
		total += clamped[i]
	}
	if total == 0 {
		return out
	}

	sum := 0
	largest := 0
	for i, w := range clamped {
		out[i] = int(math.Round(w / total * 100))
		sum += out[i]
		if w > clamped[largest] {
			largest = i
		}
	}

	out[largest] += 100 - sum
	return out
}
