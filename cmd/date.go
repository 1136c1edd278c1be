package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"patientid/internal/dates"
)

var dateCmd = &cobra.Command{
	Use:   "date <date...>",
	Short: "Normalize birth dates to the Minguo calendar",
	Long: `Normalize Gregorian (1990/05/20, 1990-05-20, 1990年5月20日) and Minguo
(民國79年5月20日, 79/5/20, 0790520) dates to "YYY/MM/DD".
Dates that cannot be read are printed unchanged.`,
	Example: `  patientid date 1990/05/20
  patientid date --marker 1980-01-29
  patientid date --speech --lang ko 民國69年1月29日
  patientid date --gregorian 079/05/20`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDate,
}

func init() {
	rootCmd.AddCommand(dateCmd)

	dateCmd.Flags().Bool("marker", false, "Prefix the result with 民國")
	dateCmd.Flags().Bool("gregorian", false, "Print YYYY-MM-DD instead")
	dateCmd.Flags().Bool("speech", false, "Print the spoken form for --lang")
}

func runDate(cmd *cobra.Command, args []string) error {
	marker, _ := cmd.Flags().GetBool("marker")
	gregorian, _ := cmd.Flags().GetBool("gregorian")
	spoken, _ := cmd.Flags().GetBool("speech")
	if gregorian && spoken {
		return fmt.Errorf("--gregorian and --speech cannot be combined")
	}
	loc := activeLocale(cmd)

	for _, a := range args {
		var out string
		switch {
		case gregorian:
			out = dates.ToGregorian(a)
		case spoken:
			out = dates.SpeechForm(a, loc)
		default:
			out = dates.Normalize(a, marker)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
