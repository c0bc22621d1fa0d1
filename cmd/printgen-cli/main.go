package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/billcraft/printgen/internal/sample"
	"github.com/billcraft/printgen/pkg/preview"
	"github.com/billcraft/printgen/pkg/render"
)

func main() {
	templatePath := flag.String("template", "", "template file to render (starter template if empty)")
	dataPath := flag.String("data", "", "voucher data file, JSON or YAML (sample data if empty)")
	voucherType := flag.String("type", "sales_invoice", "voucher type for starter template and sample data")
	engine := flag.String("engine", "", "template engine: voucher or pongo")
	renderer := flag.String("renderer", "html", "document renderer to use")
	title := flag.String("title", "", "document title")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "pick voucher type and renderer interactively")
	flag.Parse()

	orchestrator := preview.New()

	if *interactive {
		if err := promptSelections(orchestrator, voucherType, renderer); err != nil {
			log.Fatalf("prompt failed: %v", err)
		}
	}

	templateSource, err := loadTemplate(*templatePath, *voucherType)
	if err != nil {
		log.Fatalf("load template: %v", err)
	}
	data, err := loadData(*dataPath, *voucherType)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}

	result, err := orchestrator.Preview(context.Background(), preview.Request{
		Template: templateSource,
		Engine:   *engine,
		Renderer: *renderer,
		Data:     data,
		Options:  render.Options{Title: *title},
	})
	if err != nil {
		log.Fatalf("render preview: %v", err)
	}

	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stderr, "context issue: %s: %s\n", issue.Path, issue.Message)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.Document, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Preview written to %s\n", *output)
	} else {
		fmt.Println(string(result.Document))
	}
}

func promptSelections(orchestrator *preview.Orchestrator, voucherType, renderer *string) error {
	if err := survey.AskOne(&survey.Select{
		Message: "Voucher type:",
		Options: sample.VoucherTypes(),
		Default: *voucherType,
	}, voucherType); err != nil {
		return err
	}
	return survey.AskOne(&survey.Select{
		Message: "Renderer:",
		Options: orchestrator.Renderers(),
		Default: *renderer,
	}, renderer)
}

func loadTemplate(path, voucherType string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return sample.Template(voucherType)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func loadData(path, voucherType string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return sample.Context(voucherType)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return data, nil
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return data, nil
}
