package main

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	propgen "github.com/simonrw/cfn-propgen"
	"github.com/simonrw/cfn-propgen/internal/fetch"
)

var (
	schemaPath      string
	outputPath      string
	format          string
	seed            int64
	includeOptional bool
	firstWins       bool

	fetchURL string
)

var rootCmd = &cobra.Command{
	Use:           "cfn-propgen",
	Short:         "Generate skeleton documents for CloudFormation resource types",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate <TypeName>",
	Short: "Generate one structurally valid document for a resource type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := loadIndex(schemaPath)
		if err != nil {
			return err
		}

		rng := newRNG(seed)
		ropt := propgen.ResolveOpt{}
		if firstWins {
			ropt.Precedence = propgen.FirstAlternativeWins
		}
		doc, err := propgen.GenerateWith(args[0], idx, rng, ropt, propgen.SynthOpt{IncludeOptional: includeOptional})
		if err != nil {
			return err
		}

		f, err := formatterFor(format)
		if err != nil {
			return err
		}
		return withOutput(outputPath, func(w *os.File) error {
			return f.dump(doc, w)
		})
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the resource types available in the schema artifact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := loadIndex(schemaPath)
		if err != nil {
			return err
		}
		return withOutput(outputPath, func(w *os.File) error {
			for _, name := range idx.Types() {
				if _, err := fmt.Fprintln(w, name); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the vendor schema bundle and merge it into one sorted array",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 5 * time.Minute}
		docs, err := fetch.Bundle(cmd.Context(), client, fetchURL)
		if err != nil {
			return err
		}
		return withOutput(outputPath, func(w *os.File) error {
			return fetch.WriteMerged(w, docs)
		})
	},
}

// newRNG seeds from the flag when given, otherwise from ambient entropy.
// Only the CLI reaches for ambient entropy; the library always takes an
// explicit source.
func newRNG(seed int64) *rand.Rand {
	if seed >= 0 {
		return rand.New(rand.NewPCG(uint64(seed), 0))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func withOutput(path string, fn func(*os.File) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	generateCmd.Flags().StringVar(&schemaPath, "schema", "schemas.json", "merged schema artifact (json, or yaml by extension)")
	generateCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (json or yaml)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "file to output to (default: stdout)")
	generateCmd.Flags().Int64Var(&seed, "seed", -1, "rng seed for reproducible output (negative: random)")
	generateCmd.Flags().BoolVar(&includeOptional, "include-optional", false, "include optional properties, not just required ones")
	generateCmd.Flags().BoolVar(&firstWins, "first-wins", false, "allOf collisions keep the first alternative instead of the last")

	typesCmd.Flags().StringVar(&schemaPath, "schema", "schemas.json", "merged schema artifact (json, or yaml by extension)")
	typesCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "file to output to (default: stdout)")

	fetchCmd.Flags().StringVar(&fetchURL, "url", fetch.DefaultURL, "schema bundle URL")
	fetchCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "file to output to (default: stdout)")

	rootCmd.AddCommand(generateCmd, typesCmd, fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cfn-propgen:", err)
		os.Exit(1)
	}
}
