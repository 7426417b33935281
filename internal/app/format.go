package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format renders a report in the requested output format.
func Format(report *Report, format OutputFormat) (string, error) {
	switch format {
	case Markdown:
		return formatMarkdown(report), nil
	case Text:
		return formatText(report), nil
	case JSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format %v", format)
	}
}

func formatMarkdown(report *Report) string {
	var b strings.Builder
	for i, d := range report.Domains {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n\n", d.Domain)
		fmt.Fprintf(&b, "%s\n", summary(d))

		for _, m := range d.Methods {
			fmt.Fprintf(&b, "\n## %s\n\n", strings.ToUpper(m.Method))
			if len(m.Terms) == 0 {
				b.WriteString("_No candidate terms._\n")
				continue
			}

			withPages := hasPages(m)
			if withPages {
				b.WriteString("| Rank | Term | Score | Pages |\n|---:|---|---:|---|\n")
			} else {
				b.WriteString("| Rank | Term | Score |\n|---:|---|---:|\n")
			}
			for _, t := range m.Terms {
				fmt.Fprintf(&b, "| %d | %s | %s |", t.Rank, escapeCell(t.Text), formatScore(t.Score))
				if withPages {
					fmt.Fprintf(&b, " %s |", escapeCell(strings.Join(t.Pages, ", ")))
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func formatText(report *Report) string {
	var b strings.Builder
	for i, d := range report.Domains {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s\n", d.Domain, summary(d))
		for _, m := range d.Methods {
			fmt.Fprintf(&b, "\n[%s]\n", m.Method)
			for _, t := range m.Terms {
				fmt.Fprintf(&b, "%4d. %s\t%s", t.Rank, t.Text, formatScore(t.Score))
				if len(t.Pages) > 0 {
					fmt.Fprintf(&b, "\t%s", strings.Join(t.Pages, " "))
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func summary(d DomainReport) string {
	s := fmt.Sprintf("%d documents, %d candidates, %d distinct", d.Documents, d.Candidates, d.Distinct)
	if d.Cached {
		s += " (cached)"
	}
	return s
}

func hasPages(m MethodReport) bool {
	for _, t := range m.Terms {
		if len(t.Pages) > 0 {
			return true
		}
	}
	return false
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 4, 64)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
