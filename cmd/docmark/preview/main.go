package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docmark/internal/markdown"
)

func main() {
	var (
		filePath   = flag.String("file", "", "Converted Markdown file to preview")
		renderHTML = flag.Bool("render-html", true, "Render the Markdown body into HTML as part of the preview")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read document: %v", err)
	}

	meta, body, err := markdown.ParseFrontMatter(data)
	if err != nil {
		log.Fatalf("parse frontmatter: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nID: %s\nTitle: %s\nURL: %s\n\n", *filePath, meta.ID, meta.Title, meta.URL)

	encoded, err := yaml.Marshal(meta)
	if err != nil {
		log.Fatalf("encode frontmatter: %v", err)
	}
	fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n", encoded)

	if *renderHTML {
		html, err := markdown.NewRenderer().Render(body)
		if err != nil {
			log.Fatalf("render markdown: %v", err)
		}
		fmt.Fprintf(os.Stdout, "HTML:\n%s\n", html)
		return
	}

	fmt.Fprintf(os.Stdout, "Markdown:\n%s\n", body)
}
