// Package report renders the per-file conflict report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mergelens/internal/git"
)

// RegionKey addresses one region's explanation. Explanations are keyed by
// path and region index, never by the order results arrived in.
type RegionKey struct {
	Path   string
	Region int
}

// Explanation is the outcome of one reasoning-service call. Err is set when
// the service failed for this region; the text is then empty.
type Explanation struct {
	Text string
	Err  error
}

type Presenter struct {
	out io.Writer

	fileStyle    lipgloss.Style
	sectionStyle lipgloss.Style
	labelStyle   lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out: out,

		fileStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),

		sectionStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

// Present writes the full report: one section per file, one subsection per
// region, in file order.
func (p *Presenter) Present(files []git.ConflictFile, explanations map[RegionKey]Explanation) error {
	_, err := io.WriteString(p.out, p.Render(files, explanations))
	return err
}

// Render produces the report text without writing it, for callers that page
// or post-process the output.
func (p *Presenter) Render(files []git.ConflictFile, explanations map[RegionKey]Explanation) string {
	if len(files) == 0 {
		return p.labelStyle.Render("No merge conflicts detected.") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conflicted file(s):\n", len(files))

	for _, file := range files {
		b.WriteString("\n")
		b.WriteString(p.fileStyle.Render(file.Path))
		b.WriteString("\n")
		b.WriteString(p.dimStyle.Render(strings.Repeat("-", 50)))
		b.WriteString("\n")

		if len(file.Regions) == 0 {
			b.WriteString(p.dimStyle.Render("  No conflict markers found (may be binary file)"))
			b.WriteString("\n")
			continue
		}

		for i, region := range file.Regions {
			header := fmt.Sprintf("  Conflict #%d (lines %d-%d):", i+1, region.StartLine, region.EndLine)
			b.WriteString(p.sectionStyle.Render(header))
			b.WriteString("\n")
			fmt.Fprintf(&b, "  HEAD (%s) vs %s\n", region.HeadBranch, region.IncomingBranch)

			b.WriteString(p.labelStyle.Render("  Analysis:"))
			b.WriteString("\n")
			b.WriteString(p.renderExplanation(explanations[RegionKey{Path: file.Path, Region: i}]))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (p *Presenter) renderExplanation(e Explanation) string {
	if e.Err != nil {
		return p.errorStyle.Render("  [FAILED] "+e.Err.Error()) + "\n"
	}
	if e.Text == "" {
		return p.dimStyle.Render("  (no explanation)") + "\n"
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(e.Text), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
