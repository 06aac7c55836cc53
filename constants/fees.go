package constants

// VisaFee is one row of the consular fee schedule.
type VisaFee struct {
	Amount      float64
	Currency    string
	Description string
}

// Expected visa fee amounts in XOF, keyed by visa category. Payment proofs
// are matched against this table within the configured tolerance.
var ExpectedVisaFees = map[string]VisaFee{
	"COURT_SEJOUR": {Amount: 73000, Currency: "XOF", Description: "Visa court séjour (1-3 mois)"},
	"LONG_SEJOUR":  {Amount: 120000, Currency: "XOF", Description: "Visa long séjour (3+ mois)"},
	"TRANSIT":      {Amount: 50000, Currency: "XOF", Description: "Visa transit"},
	"AFFAIRES":     {Amount: 73000, Currency: "XOF", Description: "Visa affaires"},
}

// VisaFeeCategories lists the fee table keys in evaluation order so that
// amount analysis is deterministic.
var VisaFeeCategories = []string{"COURT_SEJOUR", "LONG_SEJOUR", "TRANSIT", "AFFAIRES"}

// AmountTolerancePercent is the accepted deviation between a paid amount and
// a scheduled fee.
const AmountTolerancePercent = 5.0

// Payee spellings accepted as the consular treasury.
var ValidPayees = []string{
	"TRESOR PUBLIC COTE D'IVOIRE",
	"TRESOR PUBLIC CI",
	"TRESOR CI",
	"AMBASSADE COTE D'IVOIRE",
	"AMBASSADE CI ETHIOPIE",
	"EMBASSY OF COTE D'IVOIRE",
}

// Payment method keywords, most specific channel names included.
var PaymentMethods = map[string][]string{
	"VIREMENT":     {"VIREMENT", "WIRE TRANSFER", "BANK TRANSFER", "TRANSFER"},
	"ESPECES":      {"ESPECES", "CASH", "NUMERAIRE", "CAISSE"},
	"MOBILE_MONEY": {"MOBILE MONEY", "MTN MONEY", "ORANGE MONEY", "MOOV MONEY", "WAVE", "TELEBIRR", "M-PESA"},
	"CARTE":        {"CARTE", "CARD", "VISA", "MASTERCARD", "DEBIT", "CREDIT"},
	"CHEQUE":       {"CHEQUE", "CHECK", "CHEQUIER"},
}

// PaymentMethodOrder fixes lookup order; channel-specific keywords must win
// over the generic card words, and CARTE goes last because "VISA" appears
// on nearly every consular payment proof.
var PaymentMethodOrder = []string{"MOBILE_MONEY", "VIREMENT", "CHEQUE", "ESPECES", "CARTE"}

// Banks seen on payment proofs in the district plus the ivorian banks a
// treasury transfer can originate from.
var KnownBanks = []string{
	"COMMERCIAL BANK OF ETHIOPIA", "CBE", "DASHEN BANK", "AWASH BANK",
	"ABYSSINIA BANK", "UNITED BANK", "NIB BANK", "WEGAGEN BANK",
	"ECOBANK", "STANDARD CHARTERED", "CITIBANK", "BANK OF AFRICA",
	"BGFI", "SGBCI", "BICICI", "SIB", "CORIS BANK", "BIAO",
}
