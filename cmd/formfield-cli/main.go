package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/prompt"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/uischema"
)

func main() {
	source := flag.String("source", "schema.yaml", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID to build the form for")
	overlayDir := flag.String("uischema", "", "directory of UI schema overlay files")
	mode := flag.String("mode", "html", "output mode: html or fill")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	raw, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("Failed to read source: %v", err)
	}

	form, err := openapi.BuildForm(ctx, raw, *opID, openapi.BuildOptions{})
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	if *overlayDir != "" {
		overlay, err := uischema.LoadFS(os.DirFS(*overlayDir))
		if err != nil {
			log.Fatalf("Failed to load UI schema: %v", err)
		}
		overlay.Apply(form)
	}

	var out []byte
	switch *mode {
	case "html":
		if err := form.Process(nil, nil); err != nil {
			log.Fatalf("Failed to bind form: %v", err)
		}
		markup, err := render.Form(form, render.Options{})
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
		out = []byte(markup)
	case "fill":
		if err := form.Process(nil, nil); err != nil {
			log.Fatalf("Failed to bind form: %v", err)
		}
		if err := prompt.Fill(ctx, form); err != nil {
			log.Fatalf("Failed to fill form: %v", err)
		}
		if !form.Validate() {
			log.Fatalf("Form is invalid: %v", form.Errors())
		}
		payload, err := json.MarshalIndent(form.Values(), "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode values: %v", err)
		}
		out = append(payload, '\n')
	default:
		log.Fatalf("Unknown mode %q (want html or fill)", *mode)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
		return
	}
	fmt.Print(string(out))
}
