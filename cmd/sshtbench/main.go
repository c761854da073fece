// Command sshtbench times spherical harmonic transforms per scheme and
// band-limit.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	algosht "github.com/cwbudde/algo-sht"
	"github.com/cwbudde/algo-sht/internal/cpu"
	"github.com/samber/lo"
	flag "github.com/spf13/pflag"
)

const modeInverse = "inverse"

type benchResult struct {
	scheme  algosht.Scheme
	L       int
	mode    string
	nsPerOp float64
}

func main() {
	var (
		sizeList = flag.StringP("band-limits", "L", "16,32,64", "comma-separated band-limits")
		schemes  = flag.String("schemes", "DH,MW,GL", "comma-separated sampling schemes")
		iters    = flag.Int("iters", 10, "benchmark iterations")
		warmup   = flag.Int("warmup", 2, "warmup iterations")
		workers  = flag.Int("workers", 0, "goroutines per transform; 0 uses GOMAXPROCS")
		mode     = flag.String("mode", "forward", "benchmark mode: forward, inverse, roundtrip, real, all")
		spin     = flag.Int("spin", 0, "spin number for complex transforms")
		seed     = flag.Uint64("seed", 1, "rng seed")
	)
	flag.Parse()

	sizes := parseSizes(*sizeList)
	if len(sizes) == 0 {
		fmt.Println("no band-limits specified")
		return
	}

	schemeList, err := parseSchemes(*schemes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rnd := newRand(*seed)

	fmt.Printf("cpu=%s GOMAXPROCS=%d workers=%d\n", cpu.Detect(), runtime.GOMAXPROCS(0), *workers)
	fmt.Printf("iters=%d warmup=%d spin=%d\n", *iters, *warmup, *spin)
	fmt.Printf("%6s  %6s  %10s  %14s\n", "scheme", "L", "mode", "ns/op")

	var results []benchResult

	for _, scheme := range schemeList {
		for _, L := range sizes {
			if absInt(*spin) >= L {
				continue
			}

			for _, runMode := range resolveModes(*mode) {
				res, err := benchmark(rnd, scheme, L, *spin, *workers, *iters, *warmup, runMode)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s L=%d %s: %v\n", scheme, L, runMode, err)
					continue
				}

				results = append(results, res)
				fmt.Printf("%6s  %6d  %10s  %14.0f\n", scheme, L, runMode, res.nsPerOp)
			}
		}
	}

	// Fastest scheme per band-limit and mode.
	byKey := lo.GroupBy(results, func(r benchResult) string {
		return fmt.Sprintf("%6d  %10s", r.L, r.mode)
	})

	keys := lo.Keys(byKey)
	sort.Strings(keys)

	if len(keys) > 0 {
		fmt.Println("\nfastest:")
	}

	for _, key := range keys {
		best := lo.MinBy(byKey[key], func(a, b benchResult) bool { return a.nsPerOp < b.nsPerOp })
		fmt.Printf("%s  %6s\n", key, best.scheme)
	}
}

func benchmark(rnd *rand.Rand, scheme algosht.Scheme, L, spin, workers, iters, warmup int, mode string) (benchResult, error) {
	plan, err := algosht.NewPlan(scheme, L, algosht.PlanOptions{Workers: workers})
	if err != nil {
		return benchResult{}, err
	}

	if mode == "real" {
		spin = 0
	}

	flm := make([]complex128, L*L)
	for ind := range flm {
		if el, _ := algosht.FromIndex(ind); el >= absInt(spin) {
			flm[ind] = complex(rnd.Float64(), rnd.Float64())
		}
	}

	if mode == "real" {
		// Enforce the conjugate symmetry of a real function.
		for ind := range flm {
			el, mm := algosht.FromIndex(ind)

			switch {
			case mm == 0:
				flm[ind] = complex(real(flm[ind]), 0)
			case mm < 0:
				sign := 1.0
				if mm%2 != 0 {
					sign = -1
				}

				v := flm[algosht.ToIndex(el, -mm)]
				flm[ind] = complex(sign*real(v), -sign*imag(v))
			}
		}
	}

	samples, err := plan.Inverse(flm, spin)
	if err != nil {
		return benchResult{}, err
	}

	run := func() error {
		switch mode {
		case modeInverse:
			_, err := plan.Inverse(flm, spin)
			return err
		case "roundtrip":
			f, err := plan.Inverse(flm, spin)
			if err != nil {
				return err
			}

			_, err = plan.Forward(f, spin)

			return err
		case "real":
			f, err := plan.InverseReal(flm)
			if err != nil {
				return err
			}

			_, err = plan.ForwardReal(f)

			return err
		default:
			_, err := plan.Forward(samples, spin)
			return err
		}
	}

	for range warmup {
		if err := run(); err != nil {
			return benchResult{}, err
		}
	}

	runtime.GC()

	start := time.Now()

	for range iters {
		if err := run(); err != nil {
			return benchResult{}, err
		}
	}

	elapsed := time.Since(start)

	return benchResult{
		scheme:  scheme,
		L:       L,
		mode:    mode,
		nsPerOp: float64(elapsed.Nanoseconds()) / float64(max(iters, 1)),
	}, nil
}

func resolveModes(mode string) []string {
	switch mode {
	case "all":
		return []string{"forward", modeInverse, "roundtrip", "real"}
	case modeInverse, "roundtrip", "forward", "real":
		return []string{mode}
	default:
		return []string{"forward"}
	}
}

func parseSizes(list string) []int {
	parts := lo.Map(strings.Split(list, ","), func(s string, _ int) string { return strings.TrimSpace(s) })

	return lo.FilterMap(parts, func(part string, _ int) (int, bool) {
		n, err := strconv.Atoi(part)
		return n, err == nil && n > 0
	})
}

func parseSchemes(list string) ([]algosht.Scheme, error) {
	var out []algosht.Scheme

	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}

		s, err := algosht.ParseScheme(name)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return lo.Uniq(out), nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}
