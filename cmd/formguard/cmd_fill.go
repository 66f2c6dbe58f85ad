package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard/pkg/formcheck"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/prompt"
)

var (
	fillForm    string
	fillRequire []string
	fillFields  []string

	newDriver = prompt.NewSurveyDriver
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a form interactively and check it",
	Long: `Prompts for each field of a form and checks the answers like a submission.
Leaving an answer empty stores an empty value.

Example:
  formguard fill --form rsvp --require name,email,guests --field notes`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillForm, "form", "", "Form id (required)")
	fillCmd.Flags().StringSliceVar(&fillRequire, "require", nil, "Required field names (default: from configuration)")
	fillCmd.Flags().StringSliceVar(&fillFields, "field", nil, "Optional fields to ask for as well")
	fillCmd.MarkFlagRequired("form")
}

func runFill(cmd *cobra.Command, args []string) error {
	required, err := requiredFields(cmd.Context(), fillForm, fillRequire)
	if err != nil {
		return err
	}
	fields := append(append([]string(nil), required...), splitNames(fillFields)...)

	provider, err := prompt.Fill(cmd.Context(), newDriver(), fillForm, fields, prompt.WithLabeler(fieldLabel))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	validator := formcheck.NewValidator(provider, formcheck.WithLogger(logger))
	proceed, _, err := formcheck.Guard(cmd.Context(), validator, formcheck.WriterNotifier{W: cmd.ErrOrStderr()}, fillForm, required)
	if err != nil {
		return err
	}
	if !proceed {
		return errFormInvalid
	}
	fmt.Fprintf(out, "Form %q is ready to submit\n", fillForm)
	return nil
}

func fieldLabel(name string) string {
	label := strings.TrimSpace(model.DefaultLabeler(name))
	if label == "" {
		return name
	}
	return label
}
