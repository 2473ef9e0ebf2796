package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artem13815/cvbuilder/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download your CV as a multi-page PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		doc, err := api.Export(cmd.Context())
		if err != nil {
			return err
		}
		if out == "" {
			out = doc.Filename
		}
		pages := doc.Pages
		if pages == 0 {
			if pages, err = export.CountPages(doc.Data); err != nil {
				return fmt.Errorf("server returned an unreadable PDF: %w", err)
			}
		}
		if err := os.WriteFile(out, doc.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s (%d pages, %d bytes)\n", out, pages, len(doc.Data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: server-provided name)")
}
