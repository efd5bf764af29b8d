// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// bar renders value/maximum as a fixed-width bar.
func bar(value, maximum float64) string {
	filled := 0
	if maximum > 0 {
		filled = int(value / maximum * barWidth)
	}
	filled = max(0, min(barWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func scoreLine(label string, value, maximum float64) string {
	return fmt.Sprintf("  %-20s %s %5.1f / %4.1f", label, bar(value, maximum), value, maximum)
}

// PrintParsedResume outputs a summary of a structured resume.
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	c := resume.Contact
	sb.WriteString(fmt.Sprintf("Name:      %s\n", c.Name))
	if c.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", c.Email))
	}
	if c.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", c.Location))
	}
	sb.WriteString(fmt.Sprintf("Positions: %d   Education: %d   Certifications: %d\n",
		len(resume.Experience), len(resume.Education), len(resume.Certifications)))

	if len(resume.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(resume.Experience), maxItemsToShow)
		for _, exp := range resume.Experience[:count] {
			end := exp.EndDate
			if exp.Current || end == "" {
				end = "present"
			}
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s - %s)\n", exp.Title, exp.Company, exp.StartDate, end))
		}
		if len(resume.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
		}
	}

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d): %s\n", len(resume.Skills), strings.Join(resume.Skills, ", ")))
	}

	p.printBox("PARSED RESUME", sb.String())
}

// PrintScoreResult outputs the score breakdown followed by the top recommendations.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("TOTAL SCORE: %d / 100\n\n", result.TotalScore))

	rq := result.ResumeQuality
	sb.WriteString(fmt.Sprintf("Resume Quality         %5.1f / %4.1f\n", rq.Total, scoring.MaxResumeQuality))
	sb.WriteString(scoreLine("Formatting/Structure", rq.FormattingStructure, scoring.MaxFormatting) + "\n")
	sb.WriteString(scoreLine("Spelling/Grammar", rq.SpellingGrammar, scoring.MaxSpelling) + "\n")
	sb.WriteString(scoreLine("Length/Brevity", rq.LengthBrevity, scoring.MaxLength) + "\n")
	sb.WriteString(scoreLine("Relevance/Clarity", rq.RelevanceClarity, scoring.MaxRelevance) + "\n\n")

	js := result.JobSeeker
	sb.WriteString(fmt.Sprintf("Job Seeker             %5.1f / %4.1f\n", js.Total, scoring.MaxJobSeeker))
	sb.WriteString(scoreLine("Education", js.Education, scoring.MaxEducation) + "\n")
	sb.WriteString(scoreLine("Tenure", js.Tenure, scoring.MaxTenure) + "\n")
	sb.WriteString(scoreLine("Gaps", js.Gaps, scoring.MaxGaps) + "\n")
	sb.WriteString(scoreLine("Market Match", js.MarketMatch, scoring.MaxMarket) + "\n")

	if md := result.MarketData; md != nil {
		sb.WriteString(fmt.Sprintf("\nMarket: %s demand (local %.0f, regional %.0f, remote %.0f)\n",
			md.DemandLevel, md.LocalScore, md.RegionalScore, md.RemoteScore))
	} else {
		sb.WriteString("\nMarket: no data\n")
	}

	p.printBox("SCORE BREAKDOWN", sb.String())
	p.PrintRecommendations(result.Recommendations)
}

// PrintRecommendations outputs the highest-ranked recommendations.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(recs), maxItemsToShow)
	for i, rec := range recs[:count] {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s (+%.1f)\n", i+1, strings.ToUpper(string(rec.Priority)), rec.Title, rec.PotentialGain))
		for _, line := range wrap(rec.Description, boxWidth-7) {
			sb.WriteString("   " + line + "\n")
		}
	}
	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(recs)-maxItemsToShow))
	}

	p.printBox("TOP RECOMMENDATIONS", sb.String())
}

// wrap breaks text on spaces into lines of at most width runes.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
