package constants

// Vaccine describes one recognized vaccine family.
type Vaccine struct {
	// Names includes brands, abbreviations and known OCR misreadings;
	// matching is exact-substring over uppercase text.
	Names []string
	// Required reports whether the vaccine is mandatory for entry.
	Required bool
	// ValidityYears is 0 for lifetime validity.
	ValidityYears int
}

const YellowFever = "YELLOW_FEVER"

// Vaccines recognized on vaccination cards. The yellow-fever list carries
// common OCR misreadings on purpose: exact-match is tier one of detection.
var Vaccines = map[string]Vaccine{
	YellowFever: {
		Names: []string{
			"YELLOW FEVER", "FIEVRE JAUNE", "FIÈVRE JAUNE", "AMARIL", "ANTI-AMARIL",
			"STAMARIL", "YF-VAX", "17D-204", "17D",
			"YELLOW FAVER", "YELOW FEVER", "YELL0W FEVER", "YELLOW F3VER",
			"YELL0W", "FIEVRE JUNE", "FIEVRE JAUN", "FI3VRE JAUNE",
			"YF VAX", "Y.F.",
			"INTERNATIONAL CERTIFICATE", "ICV", "YELLOW CARD",
			"VACCINATION ANTI-AMARILE", "VACCIN AMARIL", "ANTI AMARIL",
		},
		Required:      true,
		ValidityYears: 0,
	},
	"COVID19": {
		Names:         []string{"COVID", "SARS-COV-2", "CORONAVIRUS", "PFIZER", "MODERNA", "ASTRAZENECA", "JANSSEN", "JOHNSON", "SINOPHARM", "SINOVAC"},
		ValidityYears: 1,
	},
	"POLIO": {
		Names:         []string{"POLIO", "POLIOMYELITE", "IPV", "OPV"},
		ValidityYears: 10,
	},
	"MENINGITIS": {
		Names:         []string{"MENINGITE", "MENINGOCOCCAL", "ACWY", "MCV4"},
		ValidityYears: 5,
	},
}

// VaccineOrder fixes the table scan order.
var VaccineOrder = []string{YellowFever, "COVID19", "POLIO", "MENINGITIS"}

// Keywords that mark a text as vaccination-related; at least two distinct
// hits are needed before the weakest date fallback may run.
var VaccinationContextIndicators = []string{
	"VACCIN", "IMMUNIZ", "INOCUL",
	"YELLOW", "JAUNE", "AMARIL",
	"CERTIFICATE", "CERTIFICAT",
	"INTERNATIONAL HEALTH",
	"WORLD HEALTH", "OMS", "WHO",
}
