package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/export"
)

var (
	estimateDD214    string
	estimateDecision string
	estimateXLSX     string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [request.json|request.yaml|-]",
	Short: "Run the full benefit estimate",
	Long: `Estimate runs extraction, combined rating, CRSC, evidence mapping and the
appeal strategy in one pass. The request file carries edits, combat flags,
evidence and pay amounts; --dd214 and --decision add documents to it.

Example:
  vabenefits estimate request.yaml --dd214 dd214.pdf --decision letter.pdf
  vabenefits estimate --decision letter.pdf --xlsx report.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringVar(&estimateDD214, "dd214", "", "DD-214 document")
	estimateCmd.Flags().StringVar(&estimateDecision, "decision", "", "rating decision letter")
	estimateCmd.Flags().StringVar(&documentPassword, "password", "", "password for encrypted PDFs")
	estimateCmd.Flags().StringVar(&estimateXLSX, "xlsx", "", "also write the report as a workbook")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var req dto.EstimateRequest
	if len(args) == 1 {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}
		if err := decodeInput(data, &req); err != nil {
			return err
		}
	}

	if estimateDD214 != "" {
		req.DD214Pages, err = a.documentPages(cmd, estimateDD214)
		if err != nil {
			return err
		}
	}
	if estimateDecision != "" {
		req.RatingDecisionPages, err = a.documentPages(cmd, estimateDecision)
		if err != nil {
			return err
		}
	}
	if len(req.DD214Pages) == 0 && len(req.RatingDecisionPages) == 0 {
		return fmt.Errorf("no documents: pass --dd214 and/or --decision, or page text in the request")
	}

	report := a.estimate.Estimate(req)

	if estimateXLSX != "" {
		f, err := export.NewExporter().Export(report)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(estimateXLSX); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, report)
}

func (a *app) documentPages(cmd *cobra.Command, path string) ([]string, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	doc, err := a.estimate.ExtractText(cmd.Context(), filepath.Base(path), data, documentPassword)
	if err != nil {
		return nil, err
	}
	return doc.Pages, nil
}
