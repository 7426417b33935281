package document

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Font sizes assigned to Markdown blocks. Headings are larger so that style
// aware consumers treat them like titles in converted PDFs.
const (
	BodyFontSize    = 10.0
	HeadingFontStep = 2.0
)

type markdownPatterns struct {
	header     *regexp.Regexp
	bulletList *regexp.Regexp
	numberList *regexp.Regexp
	quote      *regexp.Regexp
	image      *regexp.Regexp
	link       *regexp.Regexp
	emphasis   *regexp.Regexp
}

var (
	patterns     *markdownPatterns
	patternsOnce sync.Once
)

func getPatterns() *markdownPatterns {
	patternsOnce.Do(func() {
		patterns = &markdownPatterns{
			header:     regexp.MustCompile(`^\s*(#{1,6})\s+`),
			bulletList: regexp.MustCompile(`^\s*[-*+]\s+`),
			numberList: regexp.MustCompile(`^\s*\d+\.\s+`),
			quote:      regexp.MustCompile(`^\s*>\s?`),
			image:      regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`),
			link:       regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`),
			emphasis:   regexp.MustCompile("\\*\\*|__|\\x60|\\*|\\b_|_\\b"),
		}
	})
	return patterns
}

// HeadingFontSize returns the font size used for a heading of the given
// level (1 to 6).
func HeadingFontSize(level int) float64 {
	if level < 1 || level > 6 {
		return BodyFontSize
	}
	return BodyFontSize + float64(7-level)*HeadingFontStep
}

// MarkdownNodes splits Markdown into blocks separated by blank lines and
// returns one plain-text node per block. Fenced code is dropped.
func MarkdownNodes(markdown string) []TextNode {
	p := getPatterns()

	var nodes []TextNode
	var block []string
	size := BodyFontSize
	inFence := false

	flush := func() {
		text := strings.TrimSpace(strings.Join(block, " "))
		if text != "" {
			nodes = append(nodes, TextNode{Text: text, FontSize: size})
		}
		block = block[:0]
		size = BodyFontSize
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			flush()
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if m := p.header.FindStringSubmatch(line); m != nil {
			flush()
			block = append(block, plainText(line[len(m[0]):]))
			size = HeadingFontSize(len(m[1]))
			flush()
			continue
		}
		block = append(block, plainText(line))
	}
	flush()

	return nodes
}

// plainText strips list markers, quotes, links and emphasis from one line.
func plainText(line string) string {
	p := getPatterns()
	line = p.quote.ReplaceAllString(line, "")
	line = p.bulletList.ReplaceAllString(line, "")
	line = p.numberList.ReplaceAllString(line, "")
	line = p.image.ReplaceAllString(line, "")
	line = p.link.ReplaceAllString(line, "$1")
	line = p.emphasis.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// PageMarkdown renders a page back to Markdown. The most common font size
// on the page is body text; larger sizes become headings, the largest
// size being level 1.
func PageMarkdown(p Page) string {
	levels := headingLevels(p.Nodes)

	var b strings.Builder
	for i, n := range p.Nodes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if level := levels[n.FontSize]; level > 0 {
			b.WriteString(strings.Repeat("#", level))
			b.WriteString(" ")
		}
		b.WriteString(strings.TrimSpace(n.Text))
	}
	return b.String()
}

func headingLevels(nodes []TextNode) map[float64]int {
	counts := make(map[float64]int)
	for _, n := range nodes {
		counts[n.FontSize]++
	}

	body, best := 0.0, -1
	for size, c := range counts {
		if c > best || (c == best && size < body) {
			body, best = size, c
		}
	}

	var larger []float64
	for size := range counts {
		if size > body {
			larger = append(larger, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(larger)))

	levels := make(map[float64]int, len(larger))
	for i, size := range larger {
		levels[size] = min(i+1, 6)
	}
	return levels
}

// PageLabel names a page for reports.
func PageLabel(path string, num int) string {
	return path + "#" + strconv.Itoa(num)
}
