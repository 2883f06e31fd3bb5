package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stipsportal/docintel/constants"
)

// buildSystemPrompt composes the fixed extraction instruction: schema-free,
// but hard rules against empty containers, nulls, and non-JSON prose.
func buildSystemPrompt() string {
	parts := []string{
		"You are an intelligent document data extraction agent. You analyze OCR-extracted text from any document and extract all relevant information into a well-structured JSON format.",
		"Analyze the document content to understand what type of information it contains.",
		"Extract ONLY the data that is actually present in the document.",
		"Structure the data logically with clear, descriptive field names, and group related information together.",
		"Handle multiple entities (people, items, transactions) by using arrays when appropriate.",

		// Hard rules:
		"ONLY include fields that have actual data - DO NOT include empty arrays, empty objects, or null values.",
		"DO NOT create placeholder fields or empty containers for data that doesn't exist.",
		"The JSON structure should be dynamic and only contain what's actually found in the document. If a category of information doesn't exist in the document, don't include it at all.",

		// Formatting guidelines:
		"Use PascalCase or camelCase for field names (e.g., \"FullName\", \"IssueDate\", \"AccountNumber\").",
		"Extract dates in a consistent format (prefer ISO format: YYYY-MM-DD or readable format).",
		"Extract monetary amounts with currency symbols if present.",
		"Include metadata like document numbers, reference numbers, and barcodes ONLY if they exist.",
		"Return ONLY valid JSON - no markdown, no explanations, no code blocks.",
	}
	return strings.Join(parts, " ")
}

// buildUserPrompt packages the OCR text with the detected type and
// confidence, reiterating the omit-empty directive.
func buildUserPrompt(text string, docType constants.DocType, confidence float32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document Type (detected): %s\n\n", docType)
	b.WriteString("OCR Extracted Text:\n-----------------------------\n")
	b.WriteString(text)
	b.WriteString("\n-----------------------------\n\n")
	b.WriteString("Analyze this document and extract all relevant information into a structured JSON format.\n\n")
	fmt.Fprintf(&b, "Required fields:\n- DocumentType: %q\n- ConfidenceScore: %.2f\n\n", docType, confidence)
	b.WriteString("Extract and structure ONLY the information that is actually present in the document: " +
		"personal information, dates, identification numbers, financial information, entity information, " +
		"metadata, and any other important information specific to this document type - each only if present.\n\n")
	b.WriteString("IMPORTANT: Do NOT include empty arrays like [] or empty objects like {}. " +
		"Do NOT include fields for categories that don't exist in the document. " +
		"Only include fields that have actual extracted data.\n\n")
	b.WriteString("Structure the JSON in a logical way that makes sense for this document. Use nested objects " +
		"and arrays when appropriate to organize related information, but only if they contain data.\n\n")
	b.WriteString("Return ONLY valid JSON. Do not include markdown code blocks, explanations, or any text outside the JSON.")
	return b.String()
}

// buildRefinePrompt asks the model to clean license identifier fields using
// the raw OCR text as context.
func buildRefinePrompt(record Record, rawText string) (system, user string) {
	system = "You are a precision data normalizer for identification documents."

	encoded, err := json.MarshalIndent(map[string]any(record), "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a normalization expert for OCR-extracted U.S. driver's license data.\n\n")
	b.WriteString("Raw OCR text:\n---\n")
	b.WriteString(rawText)
	b.WriteString("\n---\n\n")
	b.WriteString("JSON extracted by OCR:\n")
	b.Write(encoded)
	b.WriteString("\n\nRefine the JSON:\n")
	b.WriteString("- Remove prefixes like ID, DL, LIC, or 10/01/11 unless clearly part of ID.\n")
	b.WriteString("- Keep real IDs like \"S1234567\", \"WDL123456\".\n")
	b.WriteString("- If both front and back sides are detected, merge fields logically.\n")
	b.WriteString("- Return valid JSON only.")
	return system, b.String()
}
