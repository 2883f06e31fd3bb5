// Package classify routes a document to its type label using filename and
// OCR-text signals. Filenames are the strong, cheap signal when the upload
// convention is followed; text keywords are the fallback for everything else.
package classify

import (
	"strings"

	"github.com/stipsportal/docintel/constants"
)

// Keyword tables, checked in this exact order. The precedence is
// load-bearing: residence before income on filenames, income with a
// residence override in the text fallback. Reordering silently changes
// classification outcomes.
var (
	residenceNameKeywords = []string{"por", "proofres", "residenceproof", "addressproof", "utilitybill", "lease", "proofresidence"}
	incomeNameKeywords    = []string{"poi", "proofincome", "incomeproof", "incomecertificate", "paystub", "salaryslip", "ssa", "wages", "earnings", "income"}
	titleNameKeywords     = []string{"title", "certificateoftitle", "vehicletitle", "ownershiptitle"}
	insuranceNameKeywords = []string{"insurance", "policy", "plan", "coverage", "cobra"}
	licenseNameKeywords   = []string{"dl", "driverlicense", "driver"}
	regNameKeywords       = []string{"reg", "registration"}
	odometerNameKeywords  = []string{"odo", "odometer", "mileage"}
	referenceNameKeywords = []string{"reference", "references", "ref", "personalref", "characterref", "employerref"}

	licenseFrontTextKeywords = []string{"date of birth", "dob", "sex", "height", "weight", "eye", "class", "address", "expiration", "issue date"}
	licenseBackTextKeywords  = []string{"dmv", "barcode", "organ donor", "address change", "endorsement", "back", "restrictions"}

	titleTextKeywords = []string{"certificate of title", "vehicle title", "title and identification", "lienholder", "ownership", "odometer reading"}
	incomeTextKeywords = []string{
		"pay period", "net income", "gross income", "employer", "employee",
		"earnings", "pay date", "compensation", "deductions", "social security", "ssa",
	}
	incomeResidenceOverrides = []string{
		"address", "lease agreement", "residence", "utility service", "proof of residence",
		"proof of address", "water bill", "gas bill",
	}
	residenceTextKeywords = []string{
		"utility", "lease", "resident", "residence", "tenant", "service address",
		"payment due", "bill to", "provider", "amount due", "proof of residence", "proof of address",
	}
	insuranceTextKeywords = []string{"policy", "premium", "plan", "coverage", "expiration date", "effective date"}
	referenceTextKeywords = []string{
		"reference", "personal reference", "character reference", "employer reference",
		"contact person", "emergency contact", "reference name", "referee", "guarantor",
	}
)

// Classify detects the document type from filename and extracted text.
// siblings are the other filenames in the same batch; they disambiguate
// paired driver-license front/back uploads. Classify is pure and total:
// unresolved documents fall back to Generic, never an error.
func Classify(filename, text string, siblings []string) constants.DocType {
	name := normalizeName(filename)
	textLower := strings.ToLower(text)

	// Filename stage, first match wins.
	switch {
	case containsAny(name, residenceNameKeywords):
		return constants.ProofOfResidence
	case containsAny(name, incomeNameKeywords):
		return constants.ProofOfIncome
	case containsAny(name, titleNameKeywords):
		return constants.Title
	case containsAny(name, insuranceNameKeywords):
		return constants.Insurance
	case containsAny(name, licenseNameKeywords):
		return classifyLicense(name, textLower, siblings)
	case containsAny(name, regNameKeywords):
		return constants.Registration
	case containsAny(name, odometerNameKeywords):
		return constants.Odometer
	case containsAny(name, referenceNameKeywords):
		return constants.References
	}

	// Text fallback stage.
	if strings.Contains(textLower, "driver") && strings.Contains(textLower, "license") {
		if strings.Contains(textLower, "back") {
			return constants.DriverLicenseBack
		}
		if strings.Contains(textLower, "front") {
			return constants.DriverLicenseFront
		}
		return constants.DriverLicense
	}

	if containsAny(textLower, titleTextKeywords) {
		return constants.Title
	}

	if containsAny(textLower, incomeTextKeywords) {
		// A residence signal alongside income wins residence.
		if containsAny(textLower, incomeResidenceOverrides) {
			return constants.ProofOfResidence
		}
		return constants.ProofOfIncome
	}

	switch {
	case containsAny(textLower, residenceTextKeywords):
		return constants.ProofOfResidence
	case containsAny(textLower, insuranceTextKeywords):
		return constants.Insurance
	case strings.Contains(textLower, "registration"):
		return constants.Registration
	case strings.Contains(textLower, "odometer") || strings.Contains(textLower, "mileage"):
		return constants.Odometer
	case containsAny(textLower, referenceTextKeywords):
		return constants.References
	}

	return constants.Generic
}

// classifyLicense resolves the front/back side of a driver's license.
// Front/back in the filename is authoritative. Otherwise, when this file is
// the only license-named file in the batch, the OCR text decides; when two
// or more license-named files exist the pairing is ambiguous and the plain
// label is returned.
func classifyLicense(name, textLower string, siblings []string) constants.DocType {
	if strings.Contains(name, "front") {
		return constants.DriverLicenseFront
	}
	if strings.Contains(name, "back") {
		return constants.DriverLicenseBack
	}

	matched := 1 // the file itself
	for _, s := range siblings {
		if containsAny(normalizeName(s), licenseNameKeywords) {
			matched++
		}
	}
	if matched == 1 {
		if containsAny(textLower, licenseFrontTextKeywords) {
			return constants.DriverLicenseFront
		}
		if containsAny(textLower, licenseBackTextKeywords) {
			return constants.DriverLicenseBack
		}
		return constants.DriverLicenseFront
	}
	return constants.DriverLicense
}

func normalizeName(filename string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return r.Replace(strings.ToLower(filename))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
