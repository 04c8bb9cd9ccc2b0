// Package htmlconv turns one source HTML document into Markdown plus the
// metadata the resolution engine needs: the document title, every heading with
// its original element id, and every entity reference linked from inside a
// heading.
package htmlconv

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-docmark/anchors"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/urls"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// Page is the outcome of converting one HTML document.
type Page struct {
	Title        string
	CanonicalURL string
	Markdown     string
	Headings     []anchors.Heading
	EntityRefs   []urls.EntityRef
}

// Config tunes the converter.
type Config struct {
	// ContentSelector picks the element converted to Markdown; defaults to
	// "body".
	ContentSelector string
	Logger          interfaces.Logger
}

// Converter extracts metadata with goquery and renders Markdown with
// html-to-markdown. Instances are stateless and safe for concurrent use.
type Converter struct {
	classifier *urls.Classifier
	selector   string
	logger     interfaces.Logger
}

// New builds a Converter bound to the run's URL classifier.
func New(classifier *urls.Classifier, cfg Config) *Converter {
	selector := strings.TrimSpace(cfg.ContentSelector)
	if selector == "" {
		selector = "body"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Converter{
		classifier: classifier,
		selector:   selector,
		logger:     logger,
	}
}

// Convert parses data and produces the page's Markdown and metadata.
func (c *Converter) Convert(data []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("htmlconv parse: %w", err)
	}

	page := &Page{
		Title:        c.extractTitle(doc),
		CanonicalURL: c.extractCanonical(doc),
	}
	c.extractHeadings(doc, page)

	content := doc.Find(c.selector).First()
	source, err := content.Html()
	if err != nil || strings.TrimSpace(source) == "" {
		source = string(data)
	}

	markdown, err := htmltomarkdown.ConvertString(source)
	if err != nil {
		return nil, fmt.Errorf("htmlconv render: %w", err)
	}
	page.Markdown = markdown

	return page, nil
}

func (c *Converter) extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func (c *Converter) extractCanonical(doc *goquery.Document) string {
	href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok {
		return ""
	}
	return c.classifier.Normalize(href)
}

// extractHeadings records every heading and, for anchor links found inside a
// heading, the entity reference the heading describes (e.g. a spell linked
// from a class feature list).
func (c *Converter) extractHeadings(doc *goquery.Document, page *Page) {
	doc.Find(headingSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		id, _ := sel.Attr("id")
		page.Headings = append(page.Headings, anchors.Heading{Text: text, HTMLID: id})

		sel.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			normalized := c.classifier.Normalize(href)
			if ref, ok := c.classifier.ParseEntity(normalized); ok {
				page.EntityRefs = append(page.EntityRefs, ref)
			}
		})
	})
}
