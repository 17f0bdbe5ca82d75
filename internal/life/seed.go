package life

import (
	"micro-life/internal/core"
	"micro-life/internal/hw"
)

const (
	// Levels is the number of steps each potentiometer is scaled to.
	Levels = 16
	// MaxBias is the largest value Bias can return.
	MaxBias = 2 * (Levels - 1)
)

// Scale maps a raw ADC sample onto 0..Levels-1 given the converter's
// full-scale reading. With a 12-bit converter (fullScale 4095) this is raw/256.
func Scale(raw, fullScale int32) int {
	if fullScale <= 0 || raw <= 0 {
		return 0
	}
	v := int(int64(raw) * Levels / (int64(fullScale) + 1))
	if v >= Levels {
		v = Levels - 1
	}
	return v
}

// Bias reads both knobs and sums their scaled values.
func Bias(a, b hw.AnalogInput, fullScale int32) int {
	return Scale(a.Read(), fullScale) + Scale(b.Read(), fullScale)
}

// Seed overwrites every cell of g. For each cell a 4-bit value r is drawn;
// when r < bias a further 1-bit draw decides whether the cell is alive,
// otherwise the cell is dead.
func Seed(g *core.Grid, bias int, bits hw.BitSource) {
	g.Fill(func(x, y int) bool {
		if int(bits.Bits(4)) >= bias {
			return false
		}
		return bits.Bits(1) == 1
	})
}

// Density is the probability that Seed makes a given cell alive.
func Density(bias int) float64 {
	if bias <= 0 {
		return 0
	}
	if bias > Levels {
		bias = Levels
	}
	return float64(bias) / Levels / 2
}
