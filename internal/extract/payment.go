package extract

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
	"github.com/amondji/docextract/internal/textnorm"
)

// AmountAnalysis relates a paid amount to the consular fee schedule.
type AmountAnalysis struct {
	MatchesExpected  bool    `json:"matches_expected"`
	VisaType         string  `json:"visa_type,omitempty"`
	ExpectedAmount   float64 `json:"expected_amount,omitempty"`
	Difference       float64 `json:"difference,omitempty"`
	TolerancePercent float64 `json:"tolerance_percent"`
	Description      string  `json:"description,omitempty"`
}

// PaymentProofExtractor reads treasury receipts and bank transfer slips
// for the visa fee.
type PaymentProofExtractor struct {
	now clock
}

func NewPaymentProofExtractor(now func() time.Time) *PaymentProofExtractor {
	if now == nil {
		now = systemClock
	}
	return &PaymentProofExtractor{now: now}
}

func (e *PaymentProofExtractor) DocumentType() constants.DocumentType {
	return constants.PaymentProof
}

func (e *PaymentProofExtractor) RequiredFields() []string {
	return []string{"amount", "date", "reference"}
}

const currencyAlt = `XOF|FCFA|CFA|ETB|EUR|USD`

var (
	// Amount-first forms; group 1 number, group 2 optional currency.
	paymentAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:MONTANT|AMOUNT)\s*(?:/\s*(?:AMOUNT|MONTANT))?\s*:\s*([0-9][0-9,. ]*)\s*(` + currencyAlt + `)?`),
		regexp.MustCompile(`(?:TOTAL|SUM|SOMME)[:\s]+([0-9][0-9,. ]*)\s*(` + currencyAlt + `)?`),
		regexp.MustCompile(`(?:PAID|PAYE|RECU)[:\s]*([0-9][0-9,. ]*)\s*(` + currencyAlt + `)?`),
		regexp.MustCompile(`\b(\d{2,3}[,. ]?\d{3})\s*(` + currencyAlt + `)\b`),
	}
	// Currency-first form; group 1 currency, group 2 number.
	currencyFirstAmount = regexp.MustCompile(`\b(` + currencyAlt + `)\s*([0-9][0-9,. ]*)`)

	paymentDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:DATE|DATED|\bLE\b|\bDU\b)[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(?:PAYMENT|PAIEMENT)\s*(?:DATE)?[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}[/.-]\d{1,2}[/.-]\d{4})`),
	}

	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:REFERENCE|\bREF\b|\bN°|\bNO\b)[:\s#]*([A-Z0-9][A-Z0-9/-]{4,})`),
		regexp.MustCompile(`(?:RECEIPT|RECU|QUITTANCE)\s*(?:N°|NO)?[:\s#]*([A-Z0-9][A-Z0-9-]{4,})`),
		regexp.MustCompile(`(?:TRANSACTION|TXN|TRX)\s*(?:ID|N°)?[:\s#]*([A-Z0-9][A-Z0-9-]{4,})`),
		regexp.MustCompile(`\b(\d{8}-\d{4,8})\b`),
		regexp.MustCompile(`\b([A-Z]{2,4}\d{6,12})\b`),
	}

	payerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:PAYEUR|PAYER)\s*(?:/\s*(?:PAYER|PAYEUR))?\s*:\s*([A-Z][A-Z' -]+?)\s*(?:,|\n|MONTANT|AMOUNT|DATE|OBJET|PURPOSE|REFERENCE)`),
		regexp.MustCompile(`(?m)(?:PAYEUR|PAYER|FROM|CLIENT|CUSTOMER)\s*:\s*([A-Z][A-Z' -]+?)\s*$`),
		regexp.MustCompile(`\b(?:MR|MRS|MS|MME)[.:\s]+([A-Z][A-Z' -]+?)\s*(?:,|\n|MONTANT|AMOUNT|DATE)`),
	}

	payeePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:BENEFICIAIRE|PAYEE)\s*(?:/\s*(?:PAYEE|BENEFICIAIRE))?\s*:\s*((?:TRESOR|AMBASSADE|EMBASSY)[A-Z' -]+?)\s*(?:,|\n|METHODE|METHOD|MODE|BANQUE|BANK|TRANSACTION|$)`),
		regexp.MustCompile(`(?:BENEFICIAIRE|PAYEE|TO)[:\s]+((?:TRESOR|AMBASSADE|EMBASSY)[A-Z' -]+?)\s*(?:,|\n|METHODE|METHOD|$)`),
	}

	transactionIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:TRANSACTION\s*ID|TXN\s*ID|TRX)[:\s#]*([A-Z0-9-]+)`),
		regexp.MustCompile(`\b((?:FT|TT)\d{10,})\b`),
		regexp.MustCompile(`\b([A-Z]{2}\d{12,16})\b`),
	}

	genericBank  = regexp.MustCompile(`(?:BANK|BANQUE)\s*:?\s*([A-Z][A-Z ]+?)\s*(?:,|\n|$)`)
	bankMatchers = buildWordMatchers(constants.KnownBanks)
)

func (e *PaymentProofExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.PaymentProof)
	now := e.now()
	prepared := prepare(text)

	amount, currency, found := extractPaymentAmount(prepared)
	if found {
		res.Set("amount", amount, ConfidencePattern, entity.SourcePattern)
		res.Set("currency", currency, ConfidencePattern, entity.SourcePattern)
		analysis := AnalyzeAmount(amount)
		res.Fields["amount_analysis"] = entity.FieldValue{Value: analysis, Confidence: ConfidencePattern, Source: entity.SourcePattern}
	}

	if v, ok := firstMatch(prepared, paymentDatePatterns); ok {
		if iso, parsed := dateparse.Parse(v, dateparse.ContextAuto, now); parsed {
			res.Set("date", iso, ConfidencePattern, entity.SourcePattern)
		}
	}
	if v, ok := firstMatch(prepared, referencePatterns); ok {
		res.Set("reference", v, ConfidencePattern, entity.SourcePattern)
	}
	if payer := extractPayer(prepared); payer != "" {
		res.Set("payer", payer, ConfidencePattern, entity.SourcePattern)
	}
	if payee := extractPayee(prepared); payee != "" {
		res.Set("payee", payee, ConfidencePattern, entity.SourcePattern)
	}
	res.Set("payment_method", paymentMethod(prepared), ConfidencePattern, entity.SourcePattern)
	res.Set("bank_name", bankName(prepared), ConfidencePattern, entity.SourcePattern)
	if v, ok := firstMatch(prepared, transactionIDPatterns); ok {
		res.Set("transaction_id", v, ConfidencePattern, entity.SourcePattern)
	}

	res.ComputeSuccess(e.RequiredFields())
	return res
}

// extractPaymentAmount runs the labeled amount forms, then currency-first,
// and resolves a missing currency by magnitude: values in the fee-schedule
// band read as XOF, anything else as the local birr.
func extractPaymentAmount(prepared string) (float64, string, bool) {
	for _, re := range paymentAmountPatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		value, ok := parseAmountValue(m[1])
		if !ok {
			continue
		}
		currency := ""
		if m[2] != "" {
			currency = normalizeCurrency(m[2])
		}
		return value, defaultCurrency(value, currency), true
	}
	if m := currencyFirstAmount.FindStringSubmatch(prepared); m != nil {
		if value, ok := parseAmountValue(m[2]); ok {
			return value, normalizeCurrency(m[1]), true
		}
	}
	return 0, "", false
}

func defaultCurrency(amount float64, currency string) string {
	if currency != "" {
		return currency
	}
	if amount >= 50000 && amount <= 150000 {
		return "XOF"
	}
	return "ETB"
}

func extractPayer(prepared string) string {
	for _, re := range payerPatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 3 {
			return textnorm.NormalizeName(name)
		}
	}
	return ""
}

// extractPayee checks the valid-payee gazetteer before any labeled
// pattern; the treasury spellings are the reliable signal.
func extractPayee(prepared string) string {
	if payee, ok := containsAny(prepared, constants.ValidPayees); ok {
		return payee
	}
	for _, re := range payeePatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		payee := strings.TrimSpace(m[1])
		if len(payee) > 5 {
			return payee
		}
	}
	return ""
}

func paymentMethod(prepared string) string {
	for _, method := range constants.PaymentMethodOrder {
		if _, ok := containsAny(prepared, constants.PaymentMethods[method]); ok {
			return method
		}
	}
	return ""
}

func bankName(prepared string) string {
	for i, re := range bankMatchers {
		if re.MatchString(prepared) {
			return constants.KnownBanks[i]
		}
	}
	if m := genericBank.FindStringSubmatch(prepared); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// AnalyzeAmount matches an amount against the fee schedule within the
// configured tolerance. The schedule is checked in its declared order, so
// COURT_SEJOUR wins the 73000 tie with AFFAIRES.
func AnalyzeAmount(amount float64) AmountAnalysis {
	analysis := AmountAnalysis{TolerancePercent: constants.AmountTolerancePercent}
	if amount <= 0 {
		return analysis
	}
	for _, category := range constants.VisaFeeCategories {
		fee := constants.ExpectedVisaFees[category]
		diff := math.Abs(amount - fee.Amount)
		if diff/fee.Amount*100 <= constants.AmountTolerancePercent {
			analysis.MatchesExpected = true
			analysis.VisaType = category
			analysis.ExpectedAmount = fee.Amount
			analysis.Difference = diff
			analysis.Description = fee.Description
			break
		}
	}
	return analysis
}
