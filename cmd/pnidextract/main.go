// Command pnidextract extracts pipe routes and shape candidates from a P&ID
// diagram image and writes the result as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"pnid-extractor/internal/extract"
	"pnid-extractor/internal/pnid"
	"pnid-extractor/internal/route"
	"pnid-extractor/internal/version"
)

// output is the JSON document written for one extraction pass.
type output struct {
	Features *extract.FeatureSet `json:"features"`
	Routes   []route.Route       `json:"pipe_routes"`
	Pipes    []pnid.LabeledPipe  `json:"pipes"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "Path to P&ID image (PNG, JPEG, TIFF, or BMP)")
	configPath := flag.String("config", "", "Optional JSON config file (defaults used otherwise)")
	labelsPath := flag.String("labels", "", "Optional OCR labels JSON file")
	componentsPath := flag.String("components", "", "Optional components JSON file")
	outPath := flag.String("out", "", "Output JSON path (stdout summary only when empty)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pnidextract %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: pnidextract -image <path> [-config cfg.json] [-labels ocr.json] [-components comps.json] [-out result.json]")
		os.Exit(1)
	}

	cfg := extract.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = extract.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	extractor, err := extract.NewExtractor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	features, err := extractor.ExtractFile(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Extracted %d lines and %d contours from %dx%d image",
		features.Stats.TotalLines, features.Stats.TotalContours,
		features.ImageSize.Width, features.ImageSize.Height)

	graph, err := route.BuildGraph(features.Lines, cfg.ConnectionThreshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Graph construction failed: %v\n", err)
		os.Exit(1)
	}
	routes := route.TraceRoutes(features.Lines, graph)
	log.Printf("Traced %d pipe routes", len(routes))

	var labels []pnid.TextLabel
	if *labelsPath != "" {
		if err := readJSON(*labelsPath, &labels); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load labels: %v\n", err)
			os.Exit(1)
		}
	}

	components := pnid.ComponentsFromContours(features.Contours)
	if *componentsPath != "" {
		var external []pnid.Component
		if err := readJSON(*componentsPath, &external); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load components: %v\n", err)
			os.Exit(1)
		}
		components = append(external, components...)
	}

	mapper := pnid.NewRouteMapper(pnid.MapperOptions{
		ProximityThreshold: cfg.LabelProximityThreshold,
		MatchThreshold:     cfg.ComponentMatchThreshold,
		MaxLabels:          3,
	})
	pipes := mapper.MapRoutes(routes, labels, components)

	fmt.Printf("Lines: %d (H:%d V:%d D:%d)\n",
		features.Stats.TotalLines, features.Stats.HorizontalLines,
		features.Stats.VerticalLines, features.Stats.DiagonalLines)
	fmt.Printf("Avg line length: %.1fpx\n", features.Stats.AverageLineLength)
	fmt.Printf("Contours: %d\n", features.Stats.TotalContours)
	fmt.Printf("Routes: %d, Pipes: %d\n", len(routes), len(pipes))
	for i, p := range pipes {
		if i >= 5 {
			fmt.Printf("  ... and %d more pipes\n", len(pipes)-5)
			break
		}
		fmt.Printf("  %d. %s: %s -> %s (%d segments, %.0fpx)\n",
			i+1, p.Label, p.SourceID, p.TargetID,
			p.Route.SegmentCount, p.Route.TotalLength)
	}

	if *outPath != "" {
		data, err := json.MarshalIndent(output{Features: features, Routes: routes, Pipes: pipes}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal output: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outPath, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
			os.Exit(1)
		}
		log.Printf("Wrote %s", *outPath)
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
