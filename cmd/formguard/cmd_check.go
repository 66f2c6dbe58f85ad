package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formguard/pkg/document"
	"github.com/goliatone/go-formguard/pkg/formcheck"
)

var (
	checkHTML    string
	checkForm    string
	checkRequire []string
	checkList    bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the required fields of a form in an HTML page",
	Long: `Reads an HTML page and checks that every required field of a form holds a
value, as a browser would before submitting it.

The form is matched by name, then id, then position in the page.

Example:
  formguard check --html rsvp.html --form rsvp --require name,email,guests`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkHTML, "html", "-", "HTML file to read, - for stdin")
	checkCmd.Flags().StringVar(&checkForm, "form", "", "Form name, id or index")
	checkCmd.Flags().StringSliceVar(&checkRequire, "require", nil, "Required field names (default: from configuration)")
	checkCmd.Flags().BoolVar(&checkList, "list", false, "List the forms found in the page and exit")
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, checkHTML)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if checkList {
		for _, form := range doc.Forms() {
			fmt.Fprintf(out, "%d\tname=%q\tid=%q\t%s %s\t%s\n",
				form.Index, form.Name, form.ID, form.Method, form.Action, strings.Join(form.Fields, ","))
		}
		return nil
	}
	if strings.TrimSpace(checkForm) == "" {
		return fmt.Errorf("--form is required")
	}

	required, err := requiredFields(cmd.Context(), checkForm, checkRequire)
	if err != nil {
		return err
	}

	validator := formcheck.NewValidator(doc, formcheck.WithLogger(logger))
	proceed, outcome, err := formcheck.Guard(cmd.Context(), validator, formcheck.WriterNotifier{W: cmd.ErrOrStderr()}, checkForm, required)
	if err != nil {
		return err
	}
	if !proceed {
		logger.Info("form check failed", zap.String("form", checkForm), zap.Strings("missing", outcome.Missing))
		return errFormInvalid
	}
	fmt.Fprintf(out, "Form %q is ready to submit\n", checkForm)
	return nil
}

func readDocument(cmd *cobra.Command, path string) (*document.Document, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return document.Parse(r)
}
