package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/order"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/points"
	"github.com/smallyu/go-toy-ecdh/internal/utils"
	"github.com/smallyu/go-toy-ecdh/pkg/ecdh"
	"github.com/smallyu/go-toy-ecdh/pkg/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ecdh-demo",
		Short:        "Toy elliptic-curve Diffie-Hellman.",
		Long:         `Enumerates points of y^2 = x^3 + ax + b mod p and runs a Diffie-Hellman exchange on them.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Read settings from this YAML, TOML or JSON file.")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error.")
	flags.Bool("json", false, "Print results as JSON.")
	flags.Int("workers", 0, "Goroutines used to enumerate and rank points (0 means one per CPU).")
	flags.String("curve", curveCustom, "Curve to use: custom or secp256k1.")
	flags.String("a", "", "Coefficient a of the custom curve.")
	flags.String("b", "", "Coefficient b of the custom curve.")
	flags.String("p", "", "Prime modulus of the custom curve.")
	flags.Int("top", ecdh.DefaultCandidates, "Number of ranked points to keep (0 keeps all).")

	root.AddCommand(runCmd(), pointsCmd())
	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one key exchange.",
		Long: `Computes A = mG, B = nG, R = mB and S = nA and checks R = S.
Without --gx/--gy the point of highest order is used as G. On secp256k1 the
standard base point is used, and missing scalars are drawn at random.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(newViper(), allFlags(cmd))
			if err != nil {
				return err
			}
			return runExchange(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	flags := cmd.Flags()
	flags.String("gx", "", "x coordinate of the generator.")
	flags.String("gy", "", "y coordinate of the generator.")
	flags.String("m", "", "Private scalar of the first party.")
	flags.String("n", "", "Private scalar of the second party.")
	return cmd
}

func pointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "List curve points ranked by order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(newViper(), allFlags(cmd))
			if err != nil {
				return err
			}
			return listPoints(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
}

// allFlags merges local and inherited flags so viper sees one set.
func allFlags(cmd *cobra.Command) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.AddFlagSet(cmd.InheritedFlags())
	fs.AddFlagSet(cmd.LocalNonPersistentFlags())
	return fs
}

func newExchange(cfg *config, logger logging.Logger) (*ecdh.Exchange, error) {
	group, err := cfg.group()
	if err != nil {
		return nil, err
	}
	return ecdh.NewExchange(group,
		ecdh.WithLogger(logger),
		ecdh.WithCandidates(cfg.Top),
		ecdh.WithEnumerator(points.NewEnumerator(points.WithWorkers(cfg.Workers), points.WithLogger(logger))),
		ecdh.WithAnalyzer(order.NewAnalyzer(order.WithWorkers(cfg.Workers), order.WithLogger(logger))),
	), nil
}

func runExchange(ctx context.Context, out io.Writer, cfg *config) error {
	logger, sync, err := cfg.appLogger()
	if err != nil {
		return err
	}
	defer sync()

	ex, err := newExchange(cfg, logger)
	if err != nil {
		return err
	}
	params, err := cfg.params()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := ex.Run(ctx, params)
	if err != nil {
		return err
	}
	if cfg.JSON {
		return writeJSON(out, res)
	}

	fmt.Fprintf(out, "Curve: %s\n", res.Curve)
	if len(res.Candidates) > 0 {
		fmt.Fprintf(out, "Highest order generator: G = %s (order %d)\n", res.Generator, res.GeneratorOrder)
	} else {
		fmt.Fprintf(out, "Using generator: G = %s\n", res.Generator)
	}
	fmt.Fprintf(out, "A = %s, B = %s\n", res.A, res.B)
	fmt.Fprintf(out, "R = %s, S = %s\n", res.R, res.S)
	if !res.Agreed {
		fmt.Fprintln(out, "Error: R != S")
		return fmt.Errorf("shared secrets differ")
	}
	fmt.Fprintln(out, "OK: R = S")
	return nil
}

func listPoints(ctx context.Context, out io.Writer, cfg *config) error {
	logger, sync, err := cfg.appLogger()
	if err != nil {
		return err
	}
	defer sync()

	ex, err := newExchange(cfg, logger)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ranked, err := ex.Candidates(ctx)
	if err != nil {
		return err
	}
	if cfg.JSON {
		return writeJSON(out, ranked)
	}

	if len(ranked) == 0 {
		fmt.Fprintln(out, "No points found. Check the parameters and try again.")
		return nil
	}
	fmt.Fprintf(out, "Points on %s, by descending order:\n", ex.Group().Name())
	for i, r := range ranked {
		if r.Unbounded {
			fmt.Fprintf(out, "G%d = %s (order unbounded)\n", i+1, r.Point)
			continue
		}
		fmt.Fprintf(out, "G%d = %s (order %d)\n", i+1, r.Point, r.Order)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	return utils.WriteJSON(out, v, "  ")
}
