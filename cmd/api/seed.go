package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the household persons listed in a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.SeedFile
			}
			if file == "" {
				return errors.New("seed file required (--file or SEED_FILE)")
			}

			st, closeStore, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			return seedPersons(cmd.Context(), st, file, log)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a persons: list")
	return cmd
}
