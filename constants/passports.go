package constants

// Passport categories as they appear in consular processing.
const (
	PassportOrdinaire     = "ORDINAIRE"
	PassportDiplomatique  = "DIPLOMATIQUE"
	PassportService       = "SERVICE"
	PassportLaissezPasser = "LAISSEZ_PASSER"
)

// PassportTypeCodes maps MRZ document-type codes (type plus optional
// subtype) to passport categories.
var PassportTypeCodes = map[string]string{
	"P":  PassportOrdinaire,
	"PO": PassportOrdinaire,
	"PD": PassportDiplomatique,
	"D":  PassportDiplomatique,
	"PS": PassportService,
	"PV": PassportService,
	"PM": PassportService,
	"S":  PassportService,
	"LP": PassportLaissezPasser,
	"V":  PassportLaissezPasser,
}

// Keyword tables for inferring the category from the document text when
// the MRZ is unreadable or too generic.
var (
	DiplomaticKeywords    = []string{"DIPLOMATIC", "DIPLOMATIQUE", "DIPLOMAT"}
	ServiceKeywords       = []string{"SERVICE", "OFFICIAL", "OFFICIEL", "MISSION"}
	LaissezPasserKeywords = []string{"LAISSEZ-PASSER", "TRAVEL DOCUMENT", "TITRE DE VOYAGE", "UNITED NATIONS", "UN ", "ONU"}
)
