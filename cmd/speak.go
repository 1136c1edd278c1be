package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"patientid/internal/locale"
	"patientid/internal/logger"
	"patientid/internal/speech"
	"patientid/pkg/models"
)

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Compose the confirmation text read to the patient",
	Long: `Compose the text-to-speech confirmation for a patient record that was
corrected by hand. Fields left empty, or set to the "unrecognized" marker of
any language, are not read out. With no known field the fallback prompt
asking the patient to state their name is printed.

With --response the transcribed spoken reply of the patient is checked
instead: a confirmation prints the verification summary, anything else
asks to reconfirm or rescan.`,
	Example: `  patientid speak --name 王小明 --birth 民國079/05/20 --id A123456 --exam X光
  patientid speak --lang en --name "John Smith" --birth 1985-07-04
  patientid speak --name 王小明 --id A123456 --response "對，沒錯"`,
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().String("name", "", "Patient name")
	speakCmd.Flags().String("birth", "", "Birth date")
	speakCmd.Flags().String("id", "", "Medical ID")
	speakCmd.Flags().String("exam", "", "Examination type")
	speakCmd.Flags().String("response", "", "Transcribed spoken reply of the patient to check")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("speak")
	loc := activeLocale(cmd)

	view := models.PatientView{}
	view.Name, _ = cmd.Flags().GetString("name")
	view.BirthDate, _ = cmd.Flags().GetString("birth")
	view.MedicalID, _ = cmd.Flags().GetString("id")
	view.ExamType, _ = cmd.Flags().GetString("exam")
	rec := models.ParsePatientView(view)

	if cmd.Flags().Changed("response") {
		response, _ := cmd.Flags().GetString("response")
		return writeVerification(cmd.OutOrStdout(), rec, response, loc, log)
	}

	text := speech.Fallback(loc)
	if rec.HasKnown() {
		text = speech.Compose(rec, loc)
	} else {
		log.Debug().Msg("No known field, using fallback prompt")
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func writeVerification(w io.Writer, rec *models.PatientRecord, response string, loc locale.Locale, log zerolog.Logger) error {
	confirmed := speech.IsConfirmation(response, loc)
	log.Info().Bool("confirmed", confirmed).Str("response", response).Msg("Patient reply checked")

	fmt.Fprintln(w, speech.Outcome(confirmed, loc))
	if confirmed {
		fmt.Fprintln(w)
		fmt.Fprintln(w, speech.Summary(rec, loc))
	}
	return nil
}
