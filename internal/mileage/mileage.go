// Package mileage recovers odometer and trip readings from OCR text.
// Generic extraction models routinely misread dashboard photos; these
// patterns are the correction pass layered on top.
package mileage

import (
	"regexp"
	"strconv"
	"strings"
)

// Reading holds the recovered values. Unit is always set; the other two
// only when a value was found (and, for Trip, accepted).
type Reading struct {
	Odometer string
	Unit     string
	Trip     string
}

var (
	reSeparators = regexp.MustCompile(`[,\t]+`)
	reSpaces     = regexp.MustCompile(`\s{2,}`)
	reKilometers = regexp.MustCompile(`\bkm\b|\bkilometer`)

	// A number labeled trip/tm, label-first then value-first.
	reTripPrefixed = regexp.MustCompile(`(?:trip|tm)\s*[:\-]?\s*(\d+(?:\.\d+)?)\b`)
	reTripSuffixed = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:tm|trip)\b`)
	// Menu labels like "Trip Computer A/B" around a candidate disqualify it.
	reTripMenu = regexp.MustCompile(`computer|trip\s*[ab]\b|info`)

	reUnitNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:mi|mile|km|kilometer)s?`)
	reNumber     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Extract scans text for odometer and trip readings. It is deterministic
// and never fails; empty input yields a zero Reading.
func Extract(text string) Reading {
	if strings.TrimSpace(text) == "" {
		return Reading{}
	}

	clean := reSeparators.ReplaceAllString(strings.ToLower(text), " ")
	clean = strings.TrimSpace(reSpaces.ReplaceAllString(clean, " "))

	r := Reading{Unit: "miles"}
	if reKilometers.MatchString(clean) {
		r.Unit = "km"
	}

	// Trip: first accepted match wins.
	loc := reTripPrefixed.FindStringSubmatchIndex(clean)
	if loc == nil {
		loc = reTripSuffixed.FindStringSubmatchIndex(clean)
	}
	if loc != nil {
		lo := max(0, loc[0]-10)
		hi := min(len(clean), loc[1]+10)
		if !reTripMenu.MatchString(clean[lo:hi]) {
			r.Trip = trimTrailingZeros(clean[loc[2]:loc[3]])
		}
	}

	// Odometer: last unit-tagged number wins; the final reading on a display
	// is the odometer. With no unit-tagged number anywhere, fall back to the
	// numerically largest bare number.
	if matches := reUnitNumber.FindAllStringSubmatch(clean, -1); len(matches) > 0 {
		r.Odometer = trimTrailingZeros(matches[len(matches)-1][1])
	} else if nums := reNumber.FindAllString(clean, -1); len(nums) > 0 {
		largest := nums[0]
		largestF, _ := strconv.ParseFloat(largest, 64)
		for _, n := range nums[1:] {
			if f, err := strconv.ParseFloat(n, 64); err == nil && f > largestF {
				largest, largestF = n, f
			}
		}
		r.Odometer = trimTrailingZeros(largest)
	}

	return r
}

// trimTrailingZeros drops trailing zeros from the fractional part and a
// then-dangling decimal point: "2471.60" -> "2471.6", "1200.0" -> "1200".
// Integers are left alone.
func trimTrailingZeros(v string) string {
	if !strings.Contains(v, ".") {
		return v
	}
	v = strings.TrimRight(v, "0")
	return strings.TrimSuffix(v, ".")
}
