// Package app implements the ssht command line.
package app

import (
	"context"
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const envPrefix = "SSHT"

// GlobalFlags are shared by every subcommand.
type GlobalFlags struct {
	Verbosity   int
	Workers     int
	ConfigFile  string
	MetricsFile string
}

// Streams are the standard streams of one invocation.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Run executes the ssht command line with args.
func Run(args []string, in io.Reader, out, errout io.Writer) error {
	cmd := NewCmdSSHT("ssht", Streams{In: in, Out: out, ErrOut: errout})
	cmd.SetArgs(args)

	warnUnknownFlags(cmd, args)

	return cmd.ExecuteContext(context.Background())
}

// NewCmdSSHT returns the root command.
func NewCmdSSHT(name string, streams Streams) *cobra.Command {
	global := &GlobalFlags{}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)

	cmd := &cobra.Command{
		Use:   name,
		Short: "Spin spherical harmonic transforms",
		Long: heredoc.Doc(`
			Compute forward and inverse spin-weighted spherical harmonic
			transforms of functions sampled on the Driscoll-Healy (DH),
			McEwen-Wiaux (MW) or Gauss-Legendre (GL) grids.

			Every flag can also be set through an SSHT_* environment variable
			(--band-limit becomes SSHT_BAND_LIMIT) or a config file.`),
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			v, err := newViper(c, global.ConfigFile)
			if err != nil {
				return err
			}

			return klogFlags.Set("v", strconv.Itoa(v.GetInt("verbosity")))
		},
	}

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	pf := cmd.PersistentFlags()
	pf.IntVar(&global.Verbosity, "verbosity", 0, "log verbosity; 2 logs plan creation, 4 every transform stage.")
	pf.IntVar(&global.Workers, "workers", 0, "goroutines per transform; 0 uses GOMAXPROCS.")
	pf.StringVar(&global.ConfigFile, "config", "", "optional config file (YAML, JSON or TOML) with flag defaults.")
	pf.StringVar(&global.MetricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file.")

	cmd.AddCommand(
		NewCmdTransform(name, directionForward, global, streams),
		NewCmdTransform(name, directionInverse, global, streams),
	)

	return cmd
}

// newViper binds every flag of c to SSHT_* variables and the optional
// config file. Explicit flags win over the environment, which wins over the
// config file.
func newViper(c *cobra.Command, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(c.Flags()); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// warnUnknownFlags logs the flags in args that the selected subcommand does
// not define. Cobra drops them because of FParseErrWhitelist.
func warnUnknownFlags(root *cobra.Command, args []string) {
	c, rest, err := root.Find(args)
	if err != nil {
		return
	}

	c.InitDefaultHelpFlag()

	for _, arg := range rest {
		if arg == "--" {
			return
		}

		name, ok := flagName(arg)
		if !ok {
			continue
		}

		if lookupFlag(c, name) == nil {
			klog.InfoS("Ignoring unknown flag", "flag", arg)
		}
	}
}

func flagName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}

	if long, ok := strings.CutPrefix(arg, "--"); ok {
		name, _, _ := strings.Cut(long, "=")
		return name, name != ""
	}

	// -L4 and -L=4 name the shorthand L.
	return arg[1:2], true
}

func lookupFlag(c *cobra.Command, name string) *pflag.Flag {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.InheritedFlags()} {
		if f := fs.Lookup(name); f != nil {
			return f
		}

		if len(name) == 1 {
			if f := fs.ShorthandLookup(name); f != nil {
				return f
			}
		}
	}

	return nil
}
