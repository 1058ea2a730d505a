// Command bvinvert is a small CLI front end over the invertibility-
// condition kernel: parsing ternary domain strings and concrete bit-vector
// values from the command line, invoking one oracle, and printing the
// Boolean result. It also drives the batch runner and the standalone
// wheel factorizer.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aytey/bvinvert/pkg/batch"
	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
	"github.com/aytey/bvinvert/pkg/gen"
	"github.com/aytey/bvinvert/pkg/invert"
	"github.com/aytey/bvinvert/pkg/obslog"
	"github.com/aytey/bvinvert/pkg/runconfig"
	"github.com/aytey/bvinvert/pkg/wheel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bvinvert",
		Short: "Invertibility-condition kernel for fixed-width bit-vectors",
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newDomainCmd())
	root.AddCommand(newEnumerateCmd())
	root.AddCommand(newFactorCmd())
	root.AddCommand(newBatchCmd())
	return root
}

func parseOp(name string) (invert.Op, error) {
	switch name {
	case "add":
		return invert.Add, nil
	case "and":
		return invert.And, nil
	case "eq":
		return invert.Eq, nil
	case "mul":
		return invert.Mul, nil
	case "udiv":
		return invert.Udiv, nil
	case "urem":
		return invert.Urem, nil
	case "ult":
		return invert.Ult, nil
	case "sll":
		return invert.Sll, nil
	case "srl":
		return invert.Srl, nil
	case "concat":
		return invert.Concat, nil
	}
	return 0, fmt.Errorf("unknown operator %q", name)
}

func newCheckCmd() *cobra.Command {
	var domainStr string
	var sVal, tVal uint64
	var posX int
	var upper, lower int
	var obliviousOnly bool

	cmd := &cobra.Command{
		Use:   "check OP",
		Short: "Evaluate an invertibility condition for one operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width := len(domainStr)
			if width == 0 {
				return fmt.Errorf("--domain is required")
			}

			// slice(x, upper, lower) = t has no s operand and a different
			// oracle signature, so it is handled outside the Op dispatch.
			if args[0] == "slice" {
				t := bv.FromUint64(tVal, upper-lower+1)
				oblivious := invert.Slice(t, upper, lower)
				fmt.Printf("oblivious: %t\n", oblivious)
				if obliviousOnly {
					return nil
				}
				d := bvdomain.NewFromChar(domainStr)
				aware := invert.SliceConst(d, t, upper, lower)
				fmt.Printf("domain-aware: %t\n", aware)
				return nil
			}

			op, err := parseOp(args[0])
			if err != nil {
				return err
			}
			s := bv.FromUint64(sVal, width)
			t := bv.FromUint64(tVal, invert.TWidth(op, width, width))

			oblivious := invert.Oblivious(op, s, t, posX)
			fmt.Printf("oblivious: %t\n", oblivious)
			if obliviousOnly {
				return nil
			}

			d := bvdomain.NewFromChar(domainStr)
			aware := invert.DomainAware(op, d, s, t, posX)
			fmt.Printf("domain-aware: %t\n", aware)
			return nil
		},
	}
	cmd.Flags().StringVar(&domainStr, "domain", "", "ternary domain string, e.g. 1x0x")
	cmd.Flags().Uint64Var(&sVal, "s", 0, "side value")
	cmd.Flags().Uint64Var(&tVal, "t", 0, "target value")
	cmd.Flags().IntVar(&posX, "pos-x", 0, "0 if x is the left operand, 1 if the right")
	cmd.Flags().IntVar(&upper, "upper", 0, "slice upper bit index (slice op only)")
	cmd.Flags().IntVar(&lower, "lower", 0, "slice lower bit index (slice op only)")
	cmd.Flags().BoolVar(&obliviousOnly, "oblivious-only", false, "skip the domain-aware check")
	return cmd
}

func newDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain STR",
		Short: "Parse a ternary domain string and print lo/hi/validity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := bvdomain.NewFromChar(args[0])
			fmt.Printf("lo:    %s\n", d.Lo().ToChar())
			fmt.Printf("hi:    %s\n", d.Hi().ToChar())
			fmt.Printf("valid: %t\n", d.IsValid())
			fmt.Printf("fixed: %t\n", d.IsFixed())
			return nil
		},
	}
	return cmd
}

func newEnumerateCmd() *cobra.Command {
	var domainStr string
	var minVal, maxVal uint64
	var limit int

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Drain a domain generator over an optional [min,max] range",
		RunE: func(cmd *cobra.Command, args []string) error {
			width := len(domainStr)
			if width == 0 {
				return fmt.Errorf("--domain is required")
			}
			d := bvdomain.NewFromChar(domainStr)
			g := gen.NewGenerator(d, bv.FromUint64(minVal, width), bv.FromUint64(maxVal, width))
			n := 0
			for g.HasNext() {
				if limit > 0 && n >= limit {
					fmt.Println("...")
					break
				}
				fmt.Println(g.Next().ToChar())
				n++
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&domainStr, "domain", "", "ternary domain string")
	cmd.Flags().Uint64Var(&minVal, "min", 0, "range lower bound")
	cmd.Flags().Uint64Var(&maxVal, "max", ^uint64(0), "range upper bound")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum values to print, 0 for unlimited")
	return cmd
}

func newFactorCmd() *cobra.Command {
	var configPath string
	var limit int
	var domainStr string
	var exclMin uint64

	cmd := &cobra.Command{
		Use:   "factor N",
		Short: "Factor N using mod-30 wheel trial division",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid N: %w", err)
			}
			if limit <= 0 {
				cfg, err := runconfig.Load(configPath)
				if err != nil {
					return err
				}
				limit = cfg.StepLimit
			}

			if domainStr != "" {
				// Search for a single factor of n lying in the given domain
				// and strictly above exclMin, instead of the full factor
				// list.
				d := bvdomain.NewFromChar(domainStr)
				f, ok := wheel.FindInDomain(n, limit, d, exclMin)
				if !ok {
					fmt.Println("no factor found")
					return nil
				}
				fmt.Println(f)
				return nil
			}

			factors := wheel.Factorize(n, limit)
			for _, f := range factors {
				fmt.Println(f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	cmd.Flags().IntVar(&limit, "limit", 0, "trial-division step limit (0 = use config's step_limit)")
	cmd.Flags().StringVar(&domainStr, "domain", "", "restrict search to a factor in this ternary domain")
	cmd.Flags().Uint64Var(&exclMin, "excl-min", 0, "only accept a factor strictly greater than this (requires --domain)")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var configPath string
	var queriesPath string
	var checkpointPath string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a batch of oracle queries from a JSONL file across a worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runconfig.Load(configPath)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			log := obslog.New(cfg.Verbose)

			queries, err := batch.ReadQueriesJSONL(queriesPath)
			if err != nil {
				return fmt.Errorf("read queries: %w", err)
			}

			pool := batch.NewPool(cfg.Workers)

			if checkpointPath != "" {
				if ckpt, err := batch.LoadCheckpoint(checkpointPath); err == nil {
					if ckpt.Completed > len(queries) {
						return fmt.Errorf("checkpoint %s has %d completed queries but only %d were supplied", checkpointPath, ckpt.Completed, len(queries))
					}
					pool.Seed(ckpt.Results, ckpt.Completed)
					queries = queries[ckpt.Completed:]
					log.Info().Int("resumed", ckpt.Completed).Msg("resuming batch from checkpoint")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("load checkpoint: %w", err)
				}
			}

			pool.Run(log, queries, checkpointPath)

			if err := pool.Results.WriteJSON(cfg.Output); err != nil {
				return fmt.Errorf("write results: %w", err)
			}
			fmt.Printf("wrote %d results to %s\n", pool.Results.Len(), cfg.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	cmd.Flags().StringVar(&queriesPath, "queries", "", "JSONL file of batch.Query values, one per line")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "optional checkpoint file for resume")
	cmd.Flags().IntVar(&workers, "workers", 0, "override worker count (0 = use config)")
	cmd.MarkFlagRequired("queries")
	return cmd
}
