// Package main provides the kmedoids CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/kmedoids/internal/cpu"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kmedoids",
		Short: "Parallel k-medoids clustering over a precomputed distance matrix",
		Long: `kmedoids clusters N items into k groups given only their pairwise
distance matrix. Medoids are actual data points; both the assignment and the
medoid update are spread over a pool of parallel workers.

Inputs and outputs may be local paths, s3://bucket/key or minio://bucket/key.
Inputs compressed with zstd or lz4 are detected automatically.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kmedoids v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "cpus",
		Short: "Print the number of CPUs available to this process",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), cpu.Available())
		},
	})

	rootCmd.AddCommand(newRunCmd())
	return rootCmd
}
