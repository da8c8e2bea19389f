package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

var extractFile string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract seal/stamp fields from one image and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// stdout carries the result; logs go to stderr
		log := logger.NewWithWriter(serviceName, cfg.Server.Environment, os.Stderr)

		result := newExtractionService(cfg, log).Extract(cmd.Context(), extractFile)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "path of the image to analyze")
	_ = extractCmd.MarkFlagRequired("file")
}
