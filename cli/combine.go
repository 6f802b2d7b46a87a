package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/explain"
	"github.com/Aashish23092/va-benefits-estimator/rating"
)

var combineExplain bool

var combineCmd = &cobra.Command{
	Use:   "combine <rating>...",
	Short: "Combine disability ratings using VA math",
	Long: `Combine folds individual ratings into the combined rating, applying the
bilateral factor when paired limbs on both sides are rated.

Each rating is PERCENT[:SIDE[:BODY PART]], SIDE one of left, right, bilateral.

Example:
  vabenefits combine 50 30 10
  vabenefits combine 30:left:knee 30:right:knee`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().BoolVar(&combineExplain, "explain", false, "print a plain-language explanation instead of structured output")
}

func runCombine(cmd *cobra.Command, args []string) error {
	inputs := make([]dto.RatingInput, 0, len(args))
	for _, arg := range args {
		in, err := parseRatingArg(arg)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	res := rating.Combine(inputs)
	if combineExplain {
		_, err := fmt.Fprint(cmd.OutOrStdout(), explain.ExplainCombined(res))
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, res)
}

func parseRatingArg(arg string) (dto.RatingInput, error) {
	parts := strings.SplitN(arg, ":", 3)
	pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(parts[0]), "%"))
	if err != nil {
		return dto.RatingInput{}, fmt.Errorf("invalid rating %q: %w", arg, err)
	}
	in := dto.RatingInput{Percentage: pct, Side: dto.SideNone}
	if len(parts) > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "left", "l":
			in.Side = dto.SideLeft
		case "right", "r":
			in.Side = dto.SideRight
		case "bilateral", "both", "b":
			in.Side = dto.SideBilateral
		case "", "none":
		default:
			return dto.RatingInput{}, fmt.Errorf("invalid side in %q (want left, right or bilateral)", arg)
		}
	}
	if len(parts) > 2 {
		in.BodyPart = rating.BodyPart(parts[2])
	}
	return in, nil
}
