package parsing

import (
	"regexp"
	"strings"
)

var (
	inlineSpace   = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	excessBlanks  = regexp.MustCompile(`\n{3,}`)
	bulletPrefix  = regexp.MustCompile(`^[•·▪◦●■\-*]\s*`)
	zeroWidthRune = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
)

// CleanText normalizes extracted resume text: line endings unified, runs of spaces collapsed,
// bullet glyphs rewritten as "- ", and at most one blank line kept between blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = zeroWidthRune.Replace(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := excessBlanks.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	if bulletPrefix.MatchString(line) && !strings.HasPrefix(line, "--") {
		rest := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if rest == "" {
			return ""
		}
		return "- " + rest
	}
	return line
}
