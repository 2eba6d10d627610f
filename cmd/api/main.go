package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Household Illness Tracker API
// @version 1.0
// @description Registro de episodios de enfermedad y eventos por persona del hogar.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{
		Use:          "tracker",
		Short:        "Household illness tracker",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
