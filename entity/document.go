package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/amondji/docextract/constants"
)

// RawDocumentText is the upstream OCR output for one scanned document.
// It is never mutated by the engine.
type RawDocumentText struct {
	Text     string       `json:"text"`
	Metadata *OCRMetadata `json:"metadata,omitempty"`
}

// OCRMetadata carries the optional per-scan signals the OCR engine emits.
type OCRMetadata struct {
	BoundingBoxes []BoundingBox `json:"bounding_boxes,omitempty"`
	Confidences   []float64     `json:"confidences,omitempty"`
	FaceDetected  bool          `json:"face_detected,omitempty"`
}

// BoundingBox locates one OCR text block on the source image.
type BoundingBox struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Text   string `json:"text,omitempty"`
}

// Source tags where a field value came from.
type Source string

const (
	SourceMrz     Source = "mrz"
	SourceViz     Source = "viz"
	SourcePattern Source = "pattern"
	SourceMerged  Source = "merged"
)

// FieldValue is one extracted field with its confidence and provenance.
// A nil Value means "not found", which is distinct from an empty string.
type FieldValue struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// Warning is a non-fatal extraction anomaly. Warnings are appended, never
// used as control flow.
type Warning struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ExtractionResult is the uniform output of every extractor.
// Success is true iff every required field for the document type is present
// and non-nil.
type ExtractionResult struct {
	ID              uuid.UUID              `json:"id"`
	DocumentType    constants.DocumentType `json:"document_type"`
	Fields          map[string]FieldValue  `json:"fields"`
	Success         bool                   `json:"success"`
	Warnings        []Warning              `json:"warnings,omitempty"`
	Mrz             *MrzRecord             `json:"mrz,omitempty"`
	CrossValidation *CrossValidationResult `json:"cross_validation,omitempty"`
}

// NewExtractionResult returns an empty result for the given document type.
func NewExtractionResult(dt constants.DocumentType) ExtractionResult {
	return ExtractionResult{
		ID:           uuid.New(),
		DocumentType: dt,
		Fields:       make(map[string]FieldValue),
	}
}

// Set stores a field value; nil values are dropped so that absent and
// present-but-empty stay distinguishable.
func (r *ExtractionResult) Set(name string, value any, confidence float64, source Source) {
	if value == nil {
		return
	}
	if s, ok := value.(string); ok && s == "" {
		return
	}
	r.Fields[name] = FieldValue{Value: value, Confidence: confidence, Source: source}
}

// Get returns the field value, or nil when absent.
func (r *ExtractionResult) Get(name string) any {
	fv, ok := r.Fields[name]
	if !ok {
		return nil
	}
	return fv.Value
}

// GetString returns the field as a string, or "" when absent or non-string.
func (r *ExtractionResult) GetString(name string) string {
	s, _ := r.Get(name).(string)
	return s
}

// Has reports whether the field is present with a non-nil value.
func (r *ExtractionResult) Has(name string) bool {
	fv, ok := r.Fields[name]
	return ok && fv.Value != nil
}

// AddWarning appends a non-fatal anomaly.
func (r *ExtractionResult) AddWarning(code, message string, now time.Time) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: message, Timestamp: now})
}

// ComputeSuccess sets Success from the required-field set.
func (r *ExtractionResult) ComputeSuccess(required []string) {
	for _, f := range required {
		if !r.Has(f) {
			r.Success = false
			return
		}
	}
	r.Success = true
}
