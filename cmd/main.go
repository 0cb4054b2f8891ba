// Command fridjy tracks fridge contents and nutrition and asks a generative
// model for scans, recipes, insights and meal plans.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const appName = "fridjy"

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Food inventory and nutrition assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("FRIDJY_CONFIG"), "Config file path (YAML)")

	cfg := func() string { return configPath }
	cmd.AddCommand(
		serveCmd(cfg),
		inventoryCmd(cfg),
		scanCmd(cfg),
		insightsCmd(cfg),
		recipesCmd(cfg),
		planCmd(cfg),
		logCmd(cfg),
		profileCmd(cfg),
		summaryCmd(cfg),
	)
	return cmd
}
