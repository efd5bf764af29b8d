package parsing

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"golanglang": "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"psql":       "PostgreSQL",
	"ms excel":   "Excel",
	"excel":      "Excel",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
	"html":       "HTML",
	"css":        "CSS",
	"ehr":        "EHR",
	"cpr":        "CPR",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	// Trim whitespace
	normalized := strings.TrimSpace(skillName)

	// Check for exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Handle case normalization for common patterns
	// If it's all uppercase, try to find a canonical form
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 {
		lowerCanonical, ok := skillNormalizations[lower]
		if ok {
			return lowerCanonical
		}
		// For all-caps single words that aren't acronyms, capitalize first letter only
		if !strings.Contains(lower, " ") {
			return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
		}
	}

	// For skills starting with lowercase, capitalize first letter if it's a single word
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		// Already has mixed case, return as-is
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if normalized == strings.ToLower(normalized) && !strings.Contains(normalized, " ") && len(normalized) > 0 {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeSkills canonicalises skill names and drops empty and duplicate entries,
// keeping the first spelling seen.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, name)
	}
	return normalized
}
