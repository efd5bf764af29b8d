package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object an extraction prompt asks for.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model, e.g. "string" or "number (0-100)"
	Description string
	Required    bool
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		fmt.Fprintf(&sb, "  %q: %s%s", field.Name, typeHint, requiredHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// MarketDemandSchema asks for a labor-market demand estimate for a role, industry and location.
func MarketDemandSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "MarketDemand",
		Description: `You are a labor-market analyst. Estimate current hiring demand for the candidate profile below.
Base the estimate on broad, well-known hiring trends. If you are unsure, prefer "medium" and scores near 50.`,
		Fields: []SchemaField{
			{Name: "demand_level", Type: `"low" | "medium" | "high"`, Description: "overall hiring demand", Required: true},
			{Name: "local_score", Type: "number (0-100)", Description: "demand within commuting distance of the location", Required: true},
			{Name: "regional_score", Type: "number (0-100)", Description: "demand within the wider state or region", Required: true},
			{Name: "remote_score", Type: "number (0-100)", Description: "demand for fully remote positions", Required: true},
		},
	}
}
