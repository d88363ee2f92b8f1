// Package main generates the markdown reference for the CLI, the
// configuration file and the lint rules.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=schema -outdir=docs/reference
//	go run ./scripts/gendocs -gen=lint -outdir=docs/rules
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, schema, lint, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generator produces one family of pages into a directory.
type generator struct {
	name   string
	subdir string
	run    func(outDir string) error
}

var generators = []generator{
	{name: "cli", subdir: "cli", run: generateCLIDocs},
	{name: "schema", subdir: "reference", run: generateSchemaDocs},
	{name: "lint", subdir: "rules", run: generateLintDocs},
}

func main() {
	flag.Parse()

	selected := selectGenerators(*genFlag)
	if len(selected) == 0 {
		log.Fatalf("unknown -gen value: %s (use: cli, schema, lint, all)", *genFlag)
	}
	if *outDirFlag != "" && len(selected) > 1 {
		log.Fatalf("-outdir needs a single -gen value")
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	for _, g := range selected {
		outDir := *outDirFlag
		if outDir == "" {
			outDir = filepath.Join(projectRoot, "docs", g.subdir)
		}
		if err := g.run(outDir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", g.name, err)
		}
	}

	log.Println("Done!")
}

func selectGenerators(name string) []generator {
	if name == "all" {
		return generators
	}
	for _, g := range generators {
		if g.name == name {
			return []generator{g}
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
