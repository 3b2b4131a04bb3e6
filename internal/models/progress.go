package models

// ProgressBarCells is the width of the quantized progress bar.
const ProgressBarCells = 10

// Tier buckets a progress percentage for display emphasis.
type Tier int

const (
	TierLow  Tier = iota // below 50%
	TierMid              // 50-79%
	TierHigh             // 80% and up
)

// TierFor maps a percentage onto its display tier.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 80:
		return TierHigh
	case percentage >= 50:
		return TierMid
	default:
		return TierLow
	}
}

// FilledCells quantizes a percentage into the number of filled bar cells,
// rounding to the nearest cell and clamping to the bar width.
func FilledCells(percentage int) int {
	cells := (percentage + 5) / 10
	if cells > ProgressBarCells {
		return ProgressBarCells
	}
	if cells < 0 {
		return 0
	}
	return cells
}
