// Package main generates SEED Profile self-assessment reports as PDF.
// It renders the analysis of a user's accomplishments either as a paginated
// layout document or as rasterized, one-section-per-page visual report:
//   - seed-profile.pdf / premium-seed-profile.pdf (paginated)
//   - seed-profile-visual.pdf (rasterized, when both are requested)
//
// Reports can optionally be mailed once written.
//
// Usage: seedreport render --input analysis.json [--mode standard|screenshot|both]
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "seedreport",
	Short:         "SEED Profile report generator",
	Long:          "seedreport turns a SEED Profile analysis into a downloadable PDF report.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "seedreport v%s\n", version)
	},
}

func init() {
	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	defer klog.Flush()

	if err := rootCmd.Execute(); err != nil {
		klog.Errorf("seedreport: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		klog.Flush()
		os.Exit(1)
	}
}
