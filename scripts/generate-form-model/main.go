package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// snapshot is the serialized form model plus the field lists the guard uses.
type snapshot struct {
	Form     model.FormModel `json:"form"`
	Required []string        `json:"required"`
	Declared []string        `json:"declared"`
}

func main() {
	var (
		schemaPath  = flag.String("schema", "openapi.json", "OpenAPI document path or URL")
		operationID = flag.String("operation", "submitRSVP", "operation ID to snapshot")
		outputPath  = flag.String("output", "", "output path for the serialized form model (stdout if empty)")
	)
	flag.Parse()

	src, err := pkgopenapi.ParseSource(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid schema source: %v\n", err)
		os.Exit(1)
	}

	form, err := formguard.NewFormBuilder(pkgopenapi.WithHTTPFallback(0)).Form(context.Background(), src, *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build form model: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(snapshot{
		Form:     form,
		Required: model.RequiredFields(form),
		Declared: model.FieldNames(form),
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode form model: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "" {
		fmt.Println(string(payload))
		return
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Form model written to %s\n", *outputPath)
}
