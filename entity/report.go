package entity

import "github.com/amondji/docextract/constants"

// CheckResult is the verdict of one named business-rule check.
// Detail carries an optional numeric measurement behind the verdict,
// such as days of validity remaining or an amount deviation percentage.
type CheckResult struct {
	Passed  bool     `json:"passed"`
	Message string   `json:"message,omitempty"`
	Detail  *float64 `json:"detail,omitempty"`
}

// ValidationReport is the full rule-engine output for one document.
type ValidationReport struct {
	DocumentType constants.DocumentType `json:"document_type"`
	Checks       map[string]CheckResult `json:"checks"`
	Passed       bool                   `json:"passed"`
}

// NewValidationReport returns an empty passing report for the type.
func NewValidationReport(dt constants.DocumentType) ValidationReport {
	return ValidationReport{
		DocumentType: dt,
		Checks:       make(map[string]CheckResult),
		Passed:       true,
	}
}

// Record stores one check verdict and folds it into the overall verdict.
func (v *ValidationReport) Record(name string, passed bool, message string, detail *float64) {
	v.Checks[name] = CheckResult{Passed: passed, Message: message, Detail: detail}
	if !passed {
		v.Passed = false
	}
}

// Float is a convenience for building Detail pointers.
func Float(f float64) *float64 { return &f }

// CrossValidationResult compares machine-zone fields against their
// visual-zone counterparts.
type CrossValidationResult struct {
	Fields     map[string]FieldComparison `json:"fields"`
	Consistent bool                       `json:"consistent"`
}

// FieldComparison is one MRZ-vs-VIZ field comparison. Similarity is the
// normalized measure in [0,1]; Match applies the per-field threshold.
type FieldComparison struct {
	MrzValue   string  `json:"mrz_value"`
	VizValue   string  `json:"viz_value"`
	Similarity float64 `json:"similarity"`
	Match      bool    `json:"match"`
}
