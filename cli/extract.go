package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var documentPassword string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured data from a document",
}

var extractDD214Cmd = &cobra.Command{
	Use:   "dd214 <file>",
	Short: "Extract the service record from a DD-214 (PDF, image or text)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0], true)
	},
}

var extractRatingCmd = &cobra.Command{
	Use:     "rating <file>",
	Aliases: []string{"rating-decision"},
	Short:   "Extract conditions and dependents from a VA rating decision letter",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.AddCommand(extractDD214Cmd, extractRatingCmd)
	extractCmd.PersistentFlags().StringVar(&documentPassword, "password", "", "password for an encrypted PDF")
}

func runExtract(cmd *cobra.Command, path string, dd214 bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	data, err := readInput(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)

	if dd214 {
		resp, err := a.estimate.ParseDD214(cmd.Context(), name, data, documentPassword)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
	}
	resp, err := a.estimate.ParseRatingDecision(cmd.Context(), name, data, documentPassword)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, resp)
}
