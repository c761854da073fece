package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc"
	algosht "github.com/cwbudde/algo-sht"
	"github.com/cwbudde/algo-sht/metrics"
	"github.com/cwbudde/algo-sht/textio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

type direction string

const (
	directionForward direction = "forward"
	directionInverse direction = "inverse"
)

var transformLong = heredoc.Doc(`
	Long flags take two dashes (--inp, --out, --method). A single dash starts
	a group of shorthands, so -inp is read as -i -n -p.

	Unknown flags are logged and ignored.`)

var transformExample = heredoc.Doc(`
	# analyse a spin-2 field sampled on the MW grid
	%[1]s forward --inp=field.txt --out=flm.txt --method=MW -L 64 --spin=2

	# synthesize a real function on the DH grid
	%[1]s inverse --inp=flm.txt --out=field.txt --method=DH -L 64 --reality=1

	# take the band-limit from the environment
	SSHT_BAND_LIMIT=32 %[1]s forward --inp=- --out=-
`)

// TransformFlags are the raw flag values of a transform subcommand.
type TransformFlags struct {
	Input     string
	Output    string
	Method    string
	BandLimit int
	Spin      int
	Reality   int
}

// TransformOptions is a validated transform invocation.
type TransformOptions struct {
	Direction   direction
	Input       string
	Output      string
	Scheme      algosht.Scheme
	BandLimit   int
	Spin        int
	Real        bool
	Workers     int
	MetricsFile string

	reality int
	method  string

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// ToOptions resolves flags against the environment and config file in v.
// Keys v does not know fall back to the values held in f.
func (f *TransformFlags) ToOptions(dir direction, v *viper.Viper, streams Streams) *TransformOptions {
	v.SetDefault("inp", f.Input)
	v.SetDefault("out", f.Output)
	v.SetDefault("method", f.Method)
	v.SetDefault("band-limit", f.BandLimit)
	v.SetDefault("spin", f.Spin)
	v.SetDefault("reality", f.Reality)

	return &TransformOptions{
		Direction:   dir,
		Input:       v.GetString("inp"),
		Output:      v.GetString("out"),
		BandLimit:   v.GetInt("band-limit"),
		Spin:        v.GetInt("spin"),
		Workers:     v.GetInt("workers"),
		MetricsFile: v.GetString("metrics-file"),

		reality: v.GetInt("reality"),
		method:  v.GetString("method"),

		In:     streams.In,
		Out:    streams.Out,
		ErrOut: streams.ErrOut,
	}
}

// NewCmdTransform returns the forward or inverse subcommand.
func NewCmdTransform(parent string, dir direction, global *GlobalFlags, streams Streams) *cobra.Command {
	flags := &TransformFlags{Method: "MW", Reality: 0}

	short := "Compute harmonic coefficients of sampled data"
	if dir == directionInverse {
		short = "Synthesize samples from harmonic coefficients"
	}

	cmd := &cobra.Command{
		Use:     string(dir) + " --inp=FILE --out=FILE -L BAND_LIMIT",
		Short:   short,
		Long:    transformLong,
		Example: fmt.Sprintf(transformExample, parent),
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			v, err := newViper(c, global.ConfigFile)
			if err != nil {
				return err
			}

			opts := flags.ToOptions(dir, v, streams)

			if err := opts.Complete(); err != nil {
				return err
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			return opts.Run(c.Context())
		},
	}

	// Cobra consults the whitelist of the executed command only.
	cmd.FParseErrWhitelist.UnknownFlags = true

	cmd.Flags().StringVar(&flags.Input, "inp", flags.Input, "input file, or - for stdin.")
	cmd.Flags().StringVar(&flags.Output, "out", flags.Output, "output file, or - for stdout.")
	cmd.Flags().StringVar(&flags.Method, "method", flags.Method, "sampling scheme. One of: DH, MW, GL.")
	cmd.Flags().IntVarP(&flags.BandLimit, "band-limit", "L", flags.BandLimit, "harmonic band-limit L.")
	cmd.Flags().IntVar(&flags.Spin, "spin", flags.Spin, "spin number s, |s| < L.")
	cmd.Flags().IntVar(&flags.Reality, "reality", flags.Reality, "1 for a real spin-0 function, 0 for complex.")

	return cmd
}

// Complete parses the scheme name and the reality switch.
func (o *TransformOptions) Complete() error {
	scheme, err := algosht.ParseScheme(o.method)
	if err != nil {
		return err
	}

	o.Scheme = scheme

	switch o.reality {
	case 0:
		o.Real = false
	case 1:
		o.Real = true
	default:
		return fmt.Errorf("invalid --reality %d: must be 0 or 1", o.reality)
	}

	return nil
}

// Validate rejects incomplete invocations before any data is read.
func (o *TransformOptions) Validate() error {
	if o.Input == "" {
		return errors.New("--inp is required")
	}

	if o.Output == "" {
		return errors.New("--out is required")
	}

	return algosht.Request{
		Scheme: o.Scheme,
		L:      o.BandLimit,
		Spin:   o.Spin,
		Real:   o.Real,
	}.Validate()
}

// Run reads the input, transforms it and writes the result.
func (o *TransformOptions) Run(ctx context.Context) error {
	var (
		registry *prometheus.Registry
		opts     = algosht.PlanOptions{Workers: o.Workers}
	)

	if o.MetricsFile != "" {
		registry = prometheus.NewRegistry()

		rec, err := metrics.NewRecorder(registry)
		if err != nil {
			return err
		}

		opts.Observer = rec
	}

	plan, err := algosht.NewPlan(o.Scheme, o.BandLimit, opts)
	if err != nil {
		return err
	}

	in, closeIn, err := o.openInput()
	if err != nil {
		return err
	}
	defer closeIn()

	start := time.Now()

	result, err := o.transform(ctx, plan, in)
	if err != nil {
		return err
	}

	if err := o.writeOutput(result); err != nil {
		return err
	}

	klog.V(1).InfoS("Transform complete",
		"direction", o.Direction, "scheme", o.Scheme, "L", o.BandLimit,
		"spin", o.Spin, "real", o.Real, "elapsed", time.Since(start))

	if registry != nil {
		return prometheus.WriteToTextfile(o.MetricsFile, registry)
	}

	return nil
}

// transform returns a writer for the result so that output files are only
// created after the transform succeeded.
func (o *TransformOptions) transform(ctx context.Context, plan *algosht.Plan, in io.Reader) (func(io.Writer) error, error) {
	switch {
	case o.Direction == directionForward && o.Real:
		s, err := textio.ReadRealSamples(in, o.Scheme, o.BandLimit)
		if err != nil {
			return nil, err
		}

		flm, err := plan.ForwardRealContext(ctx, s)
		if err != nil {
			return nil, err
		}

		return func(w io.Writer) error { return textio.WriteCoefficients(w, flm) }, nil
	case o.Direction == directionForward:
		s, err := textio.ReadSamples(in, o.Scheme, o.BandLimit)
		if err != nil {
			return nil, err
		}

		flm, err := plan.ForwardContext(ctx, s, o.Spin)
		if err != nil {
			return nil, err
		}

		return func(w io.Writer) error { return textio.WriteCoefficients(w, flm) }, nil
	case o.Real:
		flm, err := textio.ReadCoefficients(in, o.BandLimit)
		if err != nil {
			return nil, err
		}

		s, err := plan.InverseRealContext(ctx, flm)
		if err != nil {
			return nil, err
		}

		return func(w io.Writer) error { return textio.WriteRealSamples(w, o.Scheme, s) }, nil
	default:
		flm, err := textio.ReadCoefficients(in, o.BandLimit)
		if err != nil {
			return nil, err
		}

		s, err := plan.InverseContext(ctx, flm, o.Spin)
		if err != nil {
			return nil, err
		}

		return func(w io.Writer) error { return textio.WriteSamples(w, o.Scheme, s) }, nil
	}
}

func (o *TransformOptions) openInput() (io.Reader, func(), error) {
	if o.Input == "-" {
		return o.In, func() {}, nil
	}

	f, err := os.Open(o.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

func (o *TransformOptions) writeOutput(write func(io.Writer) error) error {
	if o.Output == "-" {
		return write(o.Out)
	}

	f, err := os.Create(o.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}

	return f.Close()
}
