package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/mizutanik/kokoro_backend/cmd/http"
	systemcmd "github.com/mizutanik/kokoro_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "kokoro",
	Short: "Kokoro personality diagnosis and persona matching backend.",
	Long: `Kokoro is the backend for a personality diagnosis service.
It runs MBTI-style diagnosis sessions, scores results, and recommends
compatible chat personas.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
