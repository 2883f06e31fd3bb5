package constants

import "strings"

// DocType is the canonical document-type label produced by classification.
type DocType string

const (
	ProofOfResidence   DocType = "ProofOfResidence"
	ProofOfIncome      DocType = "ProofOfIncome"
	Title              DocType = "Title"
	Insurance          DocType = "Insurance"
	DriverLicenseFront DocType = "DriverLicense - Front Side"
	DriverLicenseBack  DocType = "DriverLicense - Back Side"
	DriverLicense      DocType = "DriverLicense"
	Registration       DocType = "Registration"
	Odometer           DocType = "Odometer"
	References         DocType = "References"
	Generic            DocType = "Generic"
)

// IsDriverLicense reports whether a label (in any spelling the model may have
// produced) refers to a driver's license, front, back, or unspecified.
func IsDriverLicense(label string) bool {
	folded := strings.ToLower(strings.ReplaceAll(label, " ", ""))
	return strings.Contains(folded, "driverlicense")
}
