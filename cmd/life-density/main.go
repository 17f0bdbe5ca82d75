package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"micro-life/internal/core"
	"micro-life/internal/life"
)

type row struct {
	bias     int
	expected float64
	measured float64
}

func main() {
	trials := flag.Int("trials", 200, "seedings per bias value")
	width := flag.Int("width", 32, "grid width")
	height := flag.Int("height", 12, "grid height")
	seed := flag.Int64("seed", 1337, "base seed; each bias uses seed+bias")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel bias evaluations")
	flag.Parse()

	rows := make([]row, life.MaxBias+1)
	var eg errgroup.Group
	eg.SetLimit(*workers)
	for bias := range rows {
		eg.Go(func() error {
			rng := core.NewRNG(*seed + int64(bias))
			g := core.NewGrid(*width, *height)
			live := 0
			for i := 0; i < *trials; i++ {
				life.Seed(g, bias, rng)
				live += g.Population()
			}
			rows[bias] = row{
				bias:     bias,
				expected: life.Density(bias),
				measured: float64(live) / float64(*trials * *width * *height),
			}
			return nil
		})
	}
	_ = eg.Wait()

	fmt.Printf("%4s  %8s  %8s  %7s\n", "bias", "expected", "measured", "delta")
	worst := 0.0
	for _, r := range rows {
		delta := r.measured - r.expected
		worst = math.Max(worst, math.Abs(delta))
		fmt.Printf("%4d  %8.4f  %8.4f  %+7.4f\n", r.bias, r.expected, r.measured, delta)
	}
	fmt.Printf("\nworst deviation %.4f over %d cells per bias\n", worst, *trials * *width * *height)
}
