package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

var (
	fieldsSource    string
	fieldsOperation string
	fieldsAll       bool
	fieldsTimeout   time.Duration
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print the required fields of an OpenAPI operation",
	Long: `Loads an OpenAPI document and prints the request body fields of an
operation, one per line. Required fields come first, in the order the schema
lists them.

Example:
  formguard fields --openapi api.yaml --operation submitRSVP`,
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().StringVar(&fieldsSource, "openapi", "", "OpenAPI document path or URL (required)")
	fieldsCmd.Flags().StringVar(&fieldsOperation, "operation", "", "Operation id (required)")
	fieldsCmd.Flags().BoolVar(&fieldsAll, "all", false, "Print every declared field, not only required ones")
	fieldsCmd.Flags().DurationVar(&fieldsTimeout, "timeout", 10*time.Second, "Timeout for remote documents")
	fieldsCmd.MarkFlagRequired("openapi")
	fieldsCmd.MarkFlagRequired("operation")
}

func runFields(cmd *cobra.Command, args []string) error {
	src, err := pkgopenapi.ParseSource(fieldsSource)
	if err != nil {
		return err
	}
	form, err := formguard.NewFormBuilder(pkgopenapi.WithHTTPFallback(fieldsTimeout)).Form(cmd.Context(), src, fieldsOperation)
	if err != nil {
		return err
	}

	names := model.RequiredFields(form)
	if fieldsAll {
		names = model.FieldNames(form)
	}
	if len(names) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
	}
	return nil
}
