package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"patientid/internal/logger"
	"patientid/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [fragment...]",
	Short: "Translate examination codes and English descriptions",
	Long: `Translate examination fragments such as "*340-0020" or "Rt Knee AP+Lat"
into Traditional Chinese. Each fragment is printed as
"fragment -> translation"; unknown words pass through unchanged.

Without arguments, one fragment per line is read from standard input.`,
	Example: `  patientid translate "*340-0020" "Lt Knee AP+Lat"
  patientid translate --dict extra.yaml "Hand PA"
  cat items.txt | patientid translate --target`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().Bool("target", false, "Print only the translation")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("translate")
	targetOnly, _ := cmd.Flags().GetBool("target")

	p, err := buildPipeline(cmd, log)
	if err != nil {
		return err
	}
	tr := p.Translator()

	emit := func(fragment string) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			return
		}
		out := tr.Translate(fragment)
		if targetOnly {
			out = translate.Target(out)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}

	if len(args) > 0 {
		for _, a := range args {
			emit(a)
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		emit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Failed to read standard input")
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
