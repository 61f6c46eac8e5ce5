// Package identity implements parsing, validation and canonical rendering of
// Swedish personal identity numbers as used by the BankID relying-party API.
package identity

import (
	"encoding/json"
	"fmt"
)

// PersonalNumber is a validated personal identity number. The zero value is
// not valid; obtain instances through Parse.
type PersonalNumber struct {
	year   uint16
	month  uint8
	day    uint8
	serial uint16
}

// InvalidError reports why a personal number string was rejected.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid personal number: %s", e.Reason)
}

func invalid(reason string) error {
	return &InvalidError{Reason: reason}
}

// Parse accepts the textual encodings observed in the wild:
//
//	YYYYMMDDNNNN
//	YYYYMMDD-NNNN and YYYYMMDD NNNN
//	YYMMDDNNNN, YYMMDD-NNNN and YYMMDD NNNN (recognized but rejected)
//
// Two-digit years are rejected rather than century-inferred: silently guessing
// a century would let an identity check pass against the wrong person.
func Parse(s string) (PersonalNumber, error) {
	groups, err := scan(s)
	if err != nil {
		return PersonalNumber{}, err
	}
	// The scanner must yield year, month, day, serial. Anything else is a
	// bug in the grammar, not bad input.
	if len(groups) != 4 {
		return PersonalNumber{}, invalid("unexpected capture shape")
	}

	year, err := parseGroup(groups[0], "year")
	if err != nil {
		return PersonalNumber{}, err
	}
	month, err := parseGroup(groups[1], "month")
	if err != nil {
		return PersonalNumber{}, err
	}
	day, err := parseGroup(groups[2], "day")
	if err != nil {
		return PersonalNumber{}, err
	}
	serial, err := parseGroup(groups[3], "serial")
	if err != nil {
		return PersonalNumber{}, err
	}

	if year < 1000 || year > 9999 {
		return PersonalNumber{}, invalid("year is not a four-digit year")
	}
	if month < 1 || month > 12 {
		return PersonalNumber{}, invalid("month out of range")
	}
	if day < 1 || day > 31 {
		return PersonalNumber{}, invalid("day out of range")
	}

	return PersonalNumber{
		year:   uint16(year),
		month:  uint8(month),
		day:    uint8(day),
		serial: uint16(serial),
	}, nil
}

// scan slices s into the four digit groups of the fixed grammar
// (2-or-4-digit year)(MM)(DD)(optional "-" or " ")(NNNN), anchored at both
// ends. It enforces shape only; numeric range checks happen in Parse.
func scan(s string) ([]string, error) {
	var yearWidth int
	var separator bool

	switch len(s) {
	case 10:
		yearWidth = 2
	case 11:
		yearWidth, separator = 2, true
	case 12:
		yearWidth = 4
	case 13:
		yearWidth, separator = 4, true
	default:
		return nil, invalid("length must be 10, 11, 12 or 13 characters")
	}

	if separator {
		sep := s[len(s)-5]
		if sep != '-' && sep != ' ' {
			return nil, invalid("separator must be '-' or ' '")
		}
		s = s[:len(s)-5] + s[len(s)-4:]
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, invalid("contains non-digit characters")
		}
	}

	if yearWidth == 2 {
		return nil, invalid("two-digit year is ambiguous, century must be explicit")
	}

	return []string{
		s[0:4],
		s[4:6],
		s[6:8],
		s[8:12],
	}, nil
}

// parseGroup converts an all-digit group to an int. Groups are at most four
// digits, so the value always fits its field's carrier type; range limits are
// enforced by Parse.
func parseGroup(g, field string) (int, error) {
	n := 0
	for i := 0; i < len(g); i++ {
		c := g[i]
		if c < '0' || c > '9' {
			return 0, invalid(field + " is not numeric")
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// Year returns the century-qualified four-digit birth year.
func (p PersonalNumber) Year() uint16 { return p.year }

// Month returns the birth month, 1 through 12.
func (p PersonalNumber) Month() uint8 { return p.month }

// Day returns the birth day, 1 through 31.
func (p PersonalNumber) Day() uint8 { return p.day }

// Serial returns the final four digits.
func (p PersonalNumber) Serial() uint16 { return p.serial }

// String renders the canonical 12-digit form used on the wire.
func (p PersonalNumber) String() string {
	return fmt.Sprintf("%04d%02d%02d%04d", p.year, p.month, p.day, p.serial)
}

// MarshalJSON encodes the canonical 12-digit form.
func (p PersonalNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes any accepted textual form via Parse.
func (p *PersonalNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
