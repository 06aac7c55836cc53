package docextract

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/amondji/docextract/constants"
)

// The serialized forms of ExtractionResult and ValidationReport are the
// contract with the review UI. Schemas are built as generic maps and
// compiled once at init.

// BuildExtractionResultSchema returns a JSON-Schema (draft 2020-12 subset)
// pinning the serialized ExtractionResult shape.
func BuildExtractionResultSchema() map[string]any {
	fieldValue := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"value":      map[string]any{},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"source":     map[string]any{"type": "string", "enum": []string{"mrz", "viz", "pattern", "merged"}},
		},
		"required": []string{"confidence", "source"},
	}
	warning := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"code":      map[string]any{"type": "string", "minLength": 1},
			"message":   map[string]any{"type": "string"},
			"timestamp": map[string]any{"type": "string"},
		},
		"required": []string{"code", "message"},
	}
	checksums := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_number": map[string]any{"type": "boolean"},
			"birth_date":      map[string]any{"type": "boolean"},
			"expiry_date":     map[string]any{"type": "boolean"},
			"personal":        map[string]any{"type": "boolean"},
			"composite":       map[string]any{"type": "boolean"},
		},
	}
	mrz := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"format":    map[string]any{"type": "string", "enum": []string{"TD3", "TD1"}},
			"raw_lines": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"fields":    map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
			"checksums": checksums,
		},
		"required": []string{"format", "raw_lines", "fields", "checksums"},
	}
	comparison := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mrz_value":  map[string]any{"type": "string"},
			"viz_value":  map[string]any{"type": "string"},
			"similarity": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"match":      map[string]any{"type": "boolean"},
		},
		"required": []string{"similarity", "match"},
	}
	crossValidation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fields":     map[string]any{"type": "object", "additionalProperties": comparison},
			"consistent": map[string]any{"type": "boolean"},
		},
		"required": []string{"fields", "consistent"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id":               map[string]any{"type": "string", "minLength": 36, "maxLength": 36},
			"document_type":    documentTypeProp(),
			"fields":           map[string]any{"type": "object", "additionalProperties": fieldValue},
			"success":          map[string]any{"type": "boolean"},
			"warnings":         map[string]any{"type": "array", "items": warning},
			"mrz":              mrz,
			"cross_validation": crossValidation,
		},
		"required": []string{"id", "document_type", "fields", "success"},
	}
}

// BuildValidationReportSchema returns the JSON-Schema pinning the
// serialized ValidationReport shape.
func BuildValidationReportSchema() map[string]any {
	check := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"passed":  map[string]any{"type": "boolean"},
			"message": map[string]any{"type": "string"},
			"detail":  map[string]any{"type": "number"},
		},
		"required": []string{"passed"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"document_type": documentTypeProp(),
			"checks":        map[string]any{"type": "object", "additionalProperties": check},
			"passed":        map[string]any{"type": "boolean"},
		},
		"required": []string{"document_type", "checks", "passed"},
	}
}

func documentTypeProp() map[string]any {
	types := constants.AllDocumentTypes()
	enum := make([]string, len(types))
	for i, dt := range types {
		enum[i] = string(dt)
	}
	return map[string]any{"type": "string", "enum": enum}
}

var (
	resultSchema = mustCompile("extraction_result.json", BuildExtractionResultSchema())
	reportSchema = mustCompile("validation_report.json", BuildValidationReportSchema())
)

func mustCompile(name string, schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema %s: %v", name, err))
	}
	return jsonschema.MustCompileString(name, string(b))
}

// ValidateResultJSON checks a serialized ExtractionResult against the
// output contract.
func ValidateResultJSON(data []byte) error {
	return validateJSON(resultSchema, data)
}

// ValidateReportJSON checks a serialized ValidationReport against the
// output contract.
func ValidateReportJSON(data []byte) error {
	return validateJSON(reportSchema, data)
}

func validateJSON(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match contract: %w", err)
	}
	return nil
}
