package constants

import (
	"strings"
)

// DocumentType identifies which upload slot produced a piece of OCR text.
// The set is closed: the registry rejects anything else.
type DocumentType string

const (
	Passport         DocumentType = "passport"
	FlightTicket     DocumentType = "flight_ticket"
	HotelReservation DocumentType = "hotel_reservation"
	InvitationLetter DocumentType = "invitation_letter"
	VaccinationCard  DocumentType = "vaccination_card"
	VerbalNote       DocumentType = "verbal_note"
	PaymentProof     DocumentType = "payment_proof"
	ResidenceCard    DocumentType = "residence_card"
)

var allDocumentTypes = []DocumentType{
	Passport,
	FlightTicket,
	HotelReservation,
	InvitationLetter,
	VaccinationCard,
	VerbalNote,
	PaymentProof,
	ResidenceCard,
}

func AllDocumentTypes() []DocumentType {
	out := make([]DocumentType, len(allDocumentTypes))
	copy(out, allDocumentTypes)
	return out
}

// CanonicalizeDocumentType maps caller-supplied spellings onto the closed
// enum. Returns false for anything outside the set.
func CanonicalizeDocumentType(input string) (DocumentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	synonyms := map[string]DocumentType{
		"ticket":       FlightTicket,
		"flight":       FlightTicket,
		"hotel":        HotelReservation,
		"invitation":   InvitationLetter,
		"vaccination":  VaccinationCard,
		"payment":      PaymentProof,
		"residence":    ResidenceCard,
		"note_verbale": VerbalNote,
	}
	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}
	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return "", false
}
