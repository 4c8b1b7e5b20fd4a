package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	molview "github.com/goliatone/go-molview"
	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/orchestrator"
	"github.com/goliatone/go-molview/pkg/render"
)

func main() {
	source := flag.String("catalog", "examples/data/catalog.json", "protein catalog path or URL")
	proteinName := flag.String("protein", "", "protein name to load (interactive prompt if empty)")
	renderer := flag.String("renderer", "vanilla", "renderer to use")
	output := flag.String("output", "", "output file (stdout if empty)")
	timeout := flag.Duration("timeout", 30*time.Second, "remote fetch timeout")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid catalog source: %q", *source)
	}

	loaderOptions := []catalog.LoaderOption{
		catalog.WithHTTPFallback(*timeout),
	}

	orc, err := orchestrator.New(
		orchestrator.WithRenderer(*renderer),
		orchestrator.WithCatalogLoader(molview.NewCatalogLoader(loaderOptions...)),
		orchestrator.WithAssetFetcher(molview.NewAssetFetcher(loaderOptions...)),
	)
	if err != nil {
		log.Fatalf("Failed to configure viewer: %v", err)
	}

	cat, err := orc.LoadCatalog(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if cat.Len() == 0 {
		log.Fatal("Catalog is empty")
	}

	descriptor, err := pickProtein(cat, *proteinName)
	if err != nil {
		log.Fatalf("Failed to pick protein: %v", err)
	}

	if err := orc.LoadProtein(ctx, descriptor); err != nil {
		log.Fatalf("Failed to load protein: %v", err)
	}

	selector := make([]render.SelectorOption, 0, cat.Len())
	for _, entry := range cat.Proteins {
		selector = append(selector, render.SelectorOption{Value: entry.Name, Label: entry.Name})
	}

	page, err := orc.RenderPage(ctx, selector)
	if err != nil {
		log.Fatalf("Failed to render page: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, page, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Viewer written to %s\n", *output)
	} else {
		fmt.Println(string(page))
	}
}

func pickProtein(cat catalog.Catalog, name string) (catalog.ProteinDescriptor, error) {
	if name != "" {
		for _, descriptor := range cat.Proteins {
			if descriptor.Name == name {
				return descriptor, nil
			}
		}
		return catalog.ProteinDescriptor{}, fmt.Errorf("protein %q not found in catalog", name)
	}

	names := make([]string, 0, cat.Len())
	for _, descriptor := range cat.Proteins {
		names = append(names, descriptor.Name)
	}

	var choice string
	prompt := &survey.Select{
		Message: "Pick a protein:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return catalog.ProteinDescriptor{}, err
	}

	for _, descriptor := range cat.Proteins {
		if descriptor.Name == choice {
			return descriptor, nil
		}
	}
	return catalog.ProteinDescriptor{}, fmt.Errorf("protein %q not found in catalog", choice)
}

func parseSource(raw string) catalog.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return catalog.SourceFromURL(path)
	}
	return catalog.SourceFromFile(path)
}
