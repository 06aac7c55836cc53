// Package docextract extracts structured fields from the OCR text of
// consular visa-application documents and runs the per-type business
// checks over the result. It is a pure library: no I/O beyond logging,
// no persistence, no network.
package docextract

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/common"
	"github.com/amondji/docextract/internal/extract"
	"github.com/amondji/docextract/internal/rules"
)

// ErrUnknownDocumentType is returned for a document type outside the
// supported set.
var ErrUnknownDocumentType = errors.New("unknown document type")

// Registry dispatches raw OCR text to the extractor for its document type.
// Immutable after construction and safe for concurrent use.
type Registry struct {
	log        *slog.Logger
	cfg        *common.Config
	now        func() time.Time
	extractors map[constants.DocumentType]extract.Extractor
	engine     *rules.Engine
}

// New builds a registry with every supported extractor wired in. A nil
// logger falls back to slog.Default; a nil clock to time.Now in UTC.
func New(logger *slog.Logger, now func() time.Time) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	cfg := common.LoadConfig()
	extractors := map[constants.DocumentType]extract.Extractor{
		constants.Passport:         extract.NewPassportExtractor(now),
		constants.FlightTicket:     extract.NewFlightTicketExtractor(now),
		constants.HotelReservation: extract.NewHotelReservationExtractor(now),
		constants.InvitationLetter: extract.NewInvitationLetterExtractor(now),
		constants.VaccinationCard:  extract.NewVaccinationCardExtractor(now, cfg.YellowFeverValidityDays),
		constants.VerbalNote:       extract.NewVerbalNoteExtractor(now),
		constants.PaymentProof:     extract.NewPaymentProofExtractor(now),
		constants.ResidenceCard:    extract.NewResidenceCardExtractor(now),
	}
	return &Registry{
		log:        logger,
		cfg:        cfg,
		now:        now,
		extractors: extractors,
		engine:     rules.NewEngine(now),
	}
}

// SupportedTypes lists the document types the registry can process.
func (r *Registry) SupportedTypes() []constants.DocumentType {
	return constants.AllDocumentTypes()
}

// RequiredFields returns the required-field set for a document type.
func (r *Registry) RequiredFields(dt constants.DocumentType) ([]string, error) {
	ex, ok := r.extractors[dt]
	if !ok {
		return nil, fmt.Errorf("required fields for %q: %w", dt, ErrUnknownDocumentType)
	}
	return ex.RequiredFields(), nil
}

// Process extracts fields from one document and validates them. Noisy or
// truncated text degrades confidence and success, it never errors; the
// only error is an unknown document type.
func (r *Registry) Process(raw entity.RawDocumentText, dt constants.DocumentType) (entity.ExtractionResult, entity.ValidationReport, error) {
	ex, ok := r.extractors[dt]
	if !ok {
		return entity.ExtractionResult{}, entity.ValidationReport{}, fmt.Errorf("process %q: %w", dt, ErrUnknownDocumentType)
	}

	start := time.Now()
	r.log.Info("extract.start", "document_type", dt, "text_len", len(raw.Text))

	res := ex.Extract(raw.Text, raw.Metadata)
	rep := r.engine.Validate(res)

	lowConfidence := 0
	for _, fv := range res.Fields {
		if fv.Confidence < r.cfg.ReviewThreshold {
			lowConfidence++
		}
	}
	r.log.Info("extract.ok",
		"document_type", dt,
		"trace_id", res.ID,
		"fields", len(res.Fields),
		"low_confidence_fields", lowConfidence,
		"success", res.Success,
		"checks_passed", rep.Passed,
		"duration", time.Since(start),
	)
	return res, rep, nil
}
