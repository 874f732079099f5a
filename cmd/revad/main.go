// Package main provides the revad CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/born-ml/revad/autodiff"
)

const version = "v0.1.0-dev"

func main() {
	logger := newLogger(os.Getenv("REVAD_LOG_LEVEL"))
	slog.SetDefault(logger)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version":
		fmt.Printf("revad %s\n", version)
	case "demo":
		if err := runDemo(logger, os.Args[2:]); err != nil {
			logger.Error("demo failed", "err", err)
			os.Exit(1)
		}
	default:
		fmt.Println("revad - reverse-mode automatic differentiation for Go")
		fmt.Printf("Version: %s\n\n", version)
		fmt.Println("Commands:")
		fmt.Println("  version          Show version")
		fmt.Println("  demo [x1 x2...]  Gradient of f(x) = (x + 1)·x at each point")
		fmt.Println("")
		fmt.Println("Set REVAD_LOG_LEVEL=debug to trace tape sweeps.")
	}
}

// newLogger builds a tint handler at the given level (info when unset or
// unparsable).
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
	}))
}

// demo is f(x) = (x + 1)·x with ∇f = 2x + 1.
func demo(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
	m, err := autodiff.NewMatrix(x, len(x), 1)
	if err != nil {
		return autodiff.Var{}, err
	}
	shifted, err := tape.AddScalar(m, autodiff.Const(1))
	if err != nil {
		return autodiff.Var{}, err
	}
	return tape.Dot(shifted.Data(), x)
}

func runDemo(logger *slog.Logger, args []string) error {
	points := [][]float64{{1, 2, 3}, {-0.5, 0.25}, {10}}
	if len(args) > 0 {
		p := make([]float64, len(args))
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("argument %d: %w", i+1, err)
			}
			p[i] = v
		}
		points = [][]float64{p}
	}

	logger.Info("evaluating gradients", "points", len(points))
	results, err := autodiff.GradientBatch(demo, points, autodiff.DefaultParallelConfig(),
		autodiff.WithLogger(logger))
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		fmt.Printf("x=%v  f=%g  grad=%v\n", points[i], r.Value, r.Grad)
	}
	return err
}
