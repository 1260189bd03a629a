package models

import "regexp"

// Formats of the identity and contact fields.
var (
	PANPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	AadharPattern  = regexp.MustCompile(`^[2-9][0-9]{11}$`)
	PhonePattern   = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	GSTINPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][A-Z0-9]{3}$`)
	ZipCodePattern = regexp.MustCompile(`^[0-9]{5}(?:-[0-9]{4})?$`)
)
