package trinity

import "time"

// Malaysian NRIC numbers encode the holder's date of birth in the first six
// digits as YYMMDD. Two-digit years above the pivot are read as 19xx,
// otherwise 20xx; a fixed pivot keeps evaluation deterministic.
const nricCenturyPivot = 30

// minimumDrivingAge under Malaysian road transport law.
const minimumDrivingAge = 17

// nricDateOfBirth decodes the YYMMDD prefix of an NRIC. Returns false when
// the digits do not form a valid calendar date.
func nricDateOfBirth(nric string) (time.Time, bool) {
	digits := cleanNRIC(nric)
	if len(digits) < 6 {
		return time.Time{}, false
	}
	yy := int(digits[0]-'0')*10 + int(digits[1]-'0')
	mm := int(digits[2]-'0')*10 + int(digits[3]-'0')
	dd := int(digits[4]-'0')*10 + int(digits[5]-'0')

	year := 2000 + yy
	if yy > nricCenturyPivot {
		year = 1900 + yy
	}
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	// reject 31 Feb et al: normalisation shifts the month
	if int(t.Month()) != mm || t.Day() != dd {
		return time.Time{}, false
	}
	return t, true
}

// ageAt returns full years between dob and a reference date.
func ageAt(dob, on time.Time) int {
	years := on.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(on) {
		years--
	}
	return years
}
