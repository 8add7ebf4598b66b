// Package export renders generated reports as Markdown and HTML.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders a report document as a Markdown scouting report.
func Markdown(rep map[string]any) string {
	info, _ := rep["player_info"].(map[string]any)
	body, _ := rep["report"].(map[string]any)

	var sb strings.Builder
	name := str(info, "name")
	if name == "" {
		name = "Unknown Player"
	}
	fmt.Fprintf(&sb, "# Scouting Report: %s\n\n", name)

	if club := str(info, "club"); club != "" {
		fmt.Fprintf(&sb, "- **Club:** %s\n", club)
	}
	if pos := str(info, "position"); pos != "" {
		fmt.Fprintf(&sb, "- **Position:** %s\n", pos)
	}
	if age, ok := num(info, "age"); ok {
		fmt.Fprintf(&sb, "- **Age:** %.0f\n", age)
	}
	if gen, _ := rep["generated_at"].(string); gen != "" {
		fmt.Fprintf(&sb, "- **Generated:** %s\n", gen)
	}
	sb.WriteString("\n")

	sections := []struct {
		title string
		key   string
	}{
		{"Executive Summary", "executive_summary"},
		{"Player Development", "player_development"},
		{"Breakout Analysis", "breakout_analysis"},
		{"Valuation Insights", "valuation_insights"},
		{"Transfer Fee Analysis", "transfer_fee_analysis"},
	}
	for _, sec := range sections {
		if text := str(body, sec.key); text != "" {
			fmt.Fprintf(&sb, "## %s\n\n%s\n\n", sec.title, text)
		}
	}

	if stats, _ := body["key_statistics"].([]any); len(stats) > 0 {
		sb.WriteString("## Key Statistics\n\n| Statistic | Value |\n| --- | --- |\n")
		for _, s := range stats {
			m, _ := s.(map[string]any)
			fmt.Fprintf(&sb, "| %s | %s |\n", str(m, "label"), str(m, "value"))
		}
		sb.WriteString("\n")
	}

	writeBullets(&sb, "Strengths", body, "strengths")
	writeBullets(&sb, "Weaknesses", body, "weaknesses")

	if rec := str(body, "recommendation"); rec != "" {
		fmt.Fprintf(&sb, "## Recommendation\n\n%s\n\n", rec)
	}
	if news := str(body, "news_context"); news != "" {
		fmt.Fprintf(&sb, "## News Context\n\n%s\n\n", news)
	}

	if articles, _ := rep["news"].([]any); len(articles) > 0 {
		sb.WriteString("## Recent News\n\n")
		for _, a := range articles {
			m, _ := a.(map[string]any)
			fmt.Fprintf(&sb, "- **%s** (%s, %s): %s\n", str(m, "title"), str(m, "source"), str(m, "date"), str(m, "summary"))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// HTML renders a report document as a standalone HTML page.
func HTML(rep map[string]any) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(rep)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	info, _ := rep["player_info"].(map[string]any)
	title := str(info, "name")
	if title == "" {
		title = "Scouting Report"
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, map[string]any{
		"Title": title,
		"Body":  template.HTML(buf.String()),
	})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return page.String(), nil
}

// WriteFile renders the report in the format implied by the path
// extension (.md or .html) and writes it out.
func WriteFile(rep map[string]any, path string) error {
	var content string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		rendered, err := HTML(rep)
		if err != nil {
			return err
		}
		content = rendered
	default:
		content = Markdown(rep)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func writeBullets(sb *strings.Builder, title string, body map[string]any, key string) {
	items, _ := body[key].([]any)
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, it := range items {
		if s, ok := it.(string); ok {
			fmt.Fprintf(sb, "- %s\n", s)
		}
	}
	sb.WriteString("\n")
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d9e0; padding: 0.4rem 0.8rem; }
h1, h2 { border-bottom: 1px solid #d1d9e0; padding-bottom: 0.3rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))
