package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/explain"
)

var crscExplain bool

var crscCmd = &cobra.Command{
	Use:   "crsc <input.json|input.yaml|->",
	Short: "Estimate Combat-Related Special Compensation",
	Long: `CRSC reads conditions with their combat category answers, retirement
status, retired pay and VA waiver, and estimates the monthly CRSC payment.

Example:
  vabenefits crsc claim.yaml --explain
  cat claim.json | vabenefits crsc - -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCRSC,
}

func init() {
	rootCmd.AddCommand(crscCmd)
	crscCmd.Flags().BoolVar(&crscExplain, "explain", false, "print the rationale as text instead of structured output")
}

func runCRSC(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := rateTable(cfg)
	if err != nil {
		return err
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	var in dto.CRSCInput
	if err := decodeInput(data, &in); err != nil {
		return err
	}

	res := crsc.NewCalculator(table).Calculate(in)
	if crscExplain {
		_, err := fmt.Fprint(cmd.OutOrStdout(), explain.ExplainCRSC(res))
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, res)
}
