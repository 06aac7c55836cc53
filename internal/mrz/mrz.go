// Package mrz locates and decodes machine readable zones (ICAO 9303
// TD3 passports and TD1 identity cards) in noisy OCR text.
package mrz

import (
	"regexp"
	"strings"
	"time"

	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
)

// Lines is a located MRZ block before decoding. Line3 is empty for TD3.
type Lines struct {
	Format entity.MrzFormat
	Line1  string
	Line2  string
	Line3  string
}

var (
	// OCR frequently reads the MRZ filler as one of these.
	fillerRepairer = strings.NewReplacer(
		"|", "<", "/", "<", "\\", "<",
		"[", "<", "]", "<", "{", "<", "}", "<",
	)

	// Tolerate a couple of dropped or inserted characters per line.
	reTD3Run = regexp.MustCompile(`[A-Z0-9<]{42,46}`)
	reTD1Run = regexp.MustCompile(`[A-Z0-9<]{28,32}`)

	reTD3Line1  = regexp.MustCompile(`P[A-Z<][A-Z]{3}[A-Z<]{38,42}`)
	reTD3Line2  = regexp.MustCompile(`[A-Z0-9]{9}[0-9<][A-Z]{3}[0-9]{6}[0-9<][MFX<][0-9]{6}[0-9<][A-Z0-9<]{14,16}[0-9<]`)
	rePassport1 = regexp.MustCompile(`^P[A-Z<]`)

	nonMrzChars = regexp.MustCompile(`[^A-Z0-9<]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

const (
	td3LineLen = 44
	td1LineLen = 30
)

// Locate searches the text for an MRZ block. TD3 needs two 44-character
// runs, TD1 three 30-character runs; anything less is unusable.
//
// Runs are collected per source line: spaces inside a line are OCR
// artifacts and get stripped, but line breaks delimit the MRZ rows.
func Locate(text string) (*Lines, bool) {
	var td3Runs, td1Runs []string
	var joined strings.Builder
	for _, raw := range strings.Split(strings.ToUpper(text), "\n") {
		clean := fillerRepairer.Replace(whitespace.ReplaceAllString(raw, ""))
		joined.WriteString(clean)
		td3Runs = append(td3Runs, reTD3Run.FindAllString(clean, -1)...)
		td1Runs = append(td1Runs, reTD1Run.FindAllString(clean, -1)...)
	}

	if len(td3Runs) >= 2 {
		line1 := normalizeLine(td3Runs[0], td3LineLen)
		line2 := normalizeLine(td3Runs[1], td3LineLen)
		if rePassport1.MatchString(line1) {
			return &Lines{Format: entity.MrzTD3, Line1: line1, Line2: line2}, true
		}
	}
	clean := joined.String()

	// The two lines may not sit adjacent in the OCR stream; fish for each
	// by structure instead.
	l1 := reTD3Line1.FindString(clean)
	l2 := reTD3Line2.FindString(clean)
	if l1 != "" && l2 != "" {
		return &Lines{
			Format: entity.MrzTD3,
			Line1:  normalizeLine(l1, td3LineLen),
			Line2:  normalizeLine(l2, td3LineLen),
		}, true
	}

	if len(td1Runs) >= 3 {
		return &Lines{
			Format: entity.MrzTD1,
			Line1:  normalizeLine(td1Runs[0], td1LineLen),
			Line2:  normalizeLine(td1Runs[1], td1LineLen),
			Line3:  normalizeLine(td1Runs[2], td1LineLen),
		}, true
	}

	return nil, false
}

// normalizeLine strips anything outside the MRZ alphabet, then truncates
// or pads with filler to the expected length.
func normalizeLine(line string, length int) string {
	line = nonMrzChars.ReplaceAllString(strings.ToUpper(line), "")
	if len(line) > length {
		return line[:length]
	}
	if len(line) < length {
		return line + strings.Repeat("<", length-len(line))
	}
	return line
}

// Decode parses the positional fields and verifies every check digit.
// It never fails: malformed input yields empty fields and false checksums.
func Decode(lines *Lines, now time.Time) *entity.MrzRecord {
	rec := &entity.MrzRecord{
		Format: lines.Format,
		Fields: make(map[string]string),
	}
	switch lines.Format {
	case entity.MrzTD3:
		rec.RawLines = []string{lines.Line1, lines.Line2}
		decodeTD3(rec, lines.Line1, lines.Line2, now)
	case entity.MrzTD1:
		rec.RawLines = []string{lines.Line1, lines.Line2, lines.Line3}
		decodeTD1(rec, lines.Line1, lines.Line2, lines.Line3, now)
	}
	return rec
}

func decodeTD3(rec *entity.MrzRecord, line1, line2 string, now time.Time) {
	rec.Fields["document_type"] = strings.Trim(line1[0:1], "<")
	rec.Fields["document_subtype"] = strings.Trim(line1[1:2], "<")
	rec.Fields["issuing_country"] = strings.Trim(line1[2:5], "<")
	surname, given := splitName(line1[5:])
	rec.Fields["surname"] = surname
	rec.Fields["given_names"] = given

	number := line2[0:9]
	rec.Fields["passport_number"] = strings.TrimRight(number, "<")
	rec.Fields["nationality"] = strings.Trim(line2[10:13], "<")
	if iso, ok := dateparse.ParseYYMMDD(line2[13:19], dateparse.ContextBirth, now); ok {
		rec.Fields["date_of_birth"] = iso
	}
	if sex := strings.Trim(line2[20:21], "<"); sex != "" {
		rec.Fields["sex"] = sex
	}
	if iso, ok := dateparse.ParseYYMMDD(line2[21:27], dateparse.ContextExpiry, now); ok {
		rec.Fields["expiry_date"] = iso
	}
	personal := line2[28:42]
	if p := strings.TrimRight(personal, "<"); p != "" {
		rec.Fields["personal_number"] = p
	}

	rec.Checksums = entity.MrzChecksums{
		DocumentNumber: verifyCheck(number, line2[9]),
		BirthDate:      verifyCheck(line2[13:19], line2[19]),
		ExpiryDate:     verifyCheck(line2[21:27], line2[27]),
		Personal:       verifyCheck(personal, line2[42]),
		Composite:      verifyCheck(line2[0:10]+line2[13:20]+line2[21:43], line2[43]),
	}
}

func decodeTD1(rec *entity.MrzRecord, line1, line2, line3 string, now time.Time) {
	rec.Fields["document_type"] = strings.Trim(line1[0:1], "<")
	rec.Fields["document_subtype"] = strings.Trim(line1[1:2], "<")
	rec.Fields["issuing_country"] = strings.Trim(line1[2:5], "<")
	number := line1[5:14]
	rec.Fields["passport_number"] = strings.TrimRight(number, "<")

	if iso, ok := dateparse.ParseYYMMDD(line2[0:6], dateparse.ContextBirth, now); ok {
		rec.Fields["date_of_birth"] = iso
	}
	if sex := strings.Trim(line2[7:8], "<"); sex != "" {
		rec.Fields["sex"] = sex
	}
	if iso, ok := dateparse.ParseYYMMDD(line2[8:14], dateparse.ContextExpiry, now); ok {
		rec.Fields["expiry_date"] = iso
	}
	rec.Fields["nationality"] = strings.Trim(line2[15:18], "<")

	surname, given := splitName(line3)
	rec.Fields["surname"] = surname
	rec.Fields["given_names"] = given

	rec.Checksums = entity.MrzChecksums{
		DocumentNumber: verifyCheck(number, line1[14]),
		BirthDate:      verifyCheck(line2[0:6], line2[6]),
		ExpiryDate:     verifyCheck(line2[8:14], line2[14]),
		Composite:      verifyCheck(line1[5:30]+line2[0:7]+line2[8:15]+line2[18:29], line2[29]),
	}
}

// splitName applies the name convention: double filler separates surname
// from given names, single fillers are spaces.
func splitName(field string) (surname, given string) {
	parts := strings.SplitN(field, "<<", 2)
	surname = strings.TrimSpace(strings.ReplaceAll(strings.Trim(parts[0], "<"), "<", " "))
	if len(parts) == 2 {
		given = strings.TrimSpace(strings.ReplaceAll(strings.Trim(parts[1], "<"), "<", " "))
	}
	return surname, given
}

// Checksum computes the ICAO 9303 check digit: weights cycle 7, 3, 1;
// digits carry their value, letters 10 plus their alphabet index, filler 0.
func Checksum(data string) int {
	weights := [3]int{7, 3, 1}
	sum := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'A' && c <= 'Z':
			v = int(c-'A') + 10
		}
		sum += v * weights[i%3]
	}
	return sum % 10
}

// verifyCheck compares the stated check digit against the computed one.
// A filler check digit means zero by convention; any other non-digit
// character is a verification failure, never a panic.
func verifyCheck(data string, check byte) bool {
	var expected int
	switch {
	case check >= '0' && check <= '9':
		expected = int(check - '0')
	case check == '<':
		expected = 0
	default:
		return false
	}
	return Checksum(data) == expected
}
