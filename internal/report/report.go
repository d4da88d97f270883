// Package report assembles the markdown summary: statistics table, histogram
// image references and per-engine profiling text.
package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/wxstats-cli/internal/analysis"
	"github.com/KaramelBytes/wxstats-cli/internal/bench"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/utils"
)

// DefaultTitle heads every report unless overridden.
const DefaultTitle = "Summary Report"

// Section is the profiling text of one engine.
type Section struct {
	Engine string
	Text   string
}

// Document is everything that goes into a report.
type Document struct {
	Title    string
	Stats    *analysis.Stats
	Images   []string
	Profiles []Section
}

// Options controls rendering.
type Options struct {
	Clean    CleanMode
	Keywords []string
}

// Sections converts benchmark profiles into report sections.
func Sections(profiles []*bench.Profile) []Section {
	out := make([]Section, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Section{Engine: p.Engine, Text: p.Text()})
	}
	return out
}

// Render produces the markdown text: title, statistics, images, profiling.
func Render(doc Document, opt Options) string {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = DefaultTitle
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Descriptive Statistics\n\n")
	if doc.Stats != nil {
		b.WriteString(doc.Stats.Markdown())
		b.WriteString("\n\n")
	}

	for _, img := range doc.Images {
		fmt.Fprintf(&b, "![%s](%s)\n", img, img)
	}
	if len(doc.Images) > 0 {
		b.WriteString("\n")
	}

	if len(doc.Profiles) > 0 {
		b.WriteString("## Profiling\n")
		for _, s := range doc.Profiles {
			text := strings.TrimRight(Clean(s.Text, opt.Clean, opt.Keywords), "\n")
			fmt.Fprintf(&b, "\n### %s\n\n```text\n%s\n```\n", s.Engine, text)
		}
	}
	return b.String()
}

// Write renders doc and writes it to path atomically.
func Write(path string, doc Document, opt Options) error {
	if err := utils.SafeWriteFile(path, []byte(Render(doc, opt))); err != nil {
		return &engine.Error{Kind: engine.ErrFileWrite, Op: "write report", Path: path, Err: err}
	}
	return nil
}
