package pbg

import "regexp"

// numberRE matches the NUMBER literal grammar:
//
//	["+"|"-"] ("0" | [1-9][0-9]*) ["." [0-9]+] [("e"|"E") ["+"|"-"] [0-9]+]
//
// Leading zeros are forbidden except for the bare literal "0" or a
// "0."-prefixed value; the fractional part requires at least one
// digit after the dot; the exponent requires at least one digit after
// its optional sign.
var numberRE = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Classify reports the FieldType that b encodes, or FTNull if b
// matches none of the recognized field shapes. b must contain exactly
// one field's worth of bytes; Classify does not scan for delimiters.
//
// The rules are tried in a fixed order (TRUE, FALSE, type tags,
// STRING, VAR, DATE, NUMBER, operators); no input matches more than one rule, so the order only
// matters as documentation.
func Classify(b []byte) FieldType {
	if len(b) == 0 {
		return FTNull
	}
	switch string(b) {
	case "TRUE":
		return FTTrue
	case "FALSE":
		return FTFalse
	case "DATE":
		return FTTPDate
	case "BOOL":
		return FTTPBool
	case "NUMBER":
		return FTTPNumber
	case "STRING":
		return FTTPString
	}
	if len(b) >= 2 && b[0] == '\'' && b[len(b)-1] == '\'' {
		return FTString
	}
	if len(b) >= 2 && b[0] == '[' && b[len(b)-1] == ']' {
		return FTVar
	}
	if isDateShape(b) {
		return FTDate
	}
	if numberRE.Match(b) {
		return FTNumber
	}
	if len(b) == 1 {
		switch b[0] {
		case '!', '&', '|', '=', '<', '>', '?', '@':
			return operatorFor(b)
		}
	}
	if len(b) == 2 {
		switch string(b) {
		case "!=", "<=", ">=":
			return operatorFor(b)
		}
	}
	return FTNull
}

// isDateShape reports whether b has the literal shape dddd-dd-dd.
func isDateShape(b []byte) bool {
	if len(b) != 10 {
		return false
	}
	for i, c := range b {
		switch i {
		case 4, 7:
			if c != '-' {
				return false
			}
		default:
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// operatorFor maps an already-recognized operator symbol to its
// FieldType. Callers must only pass byte slices that are known to be
// one of the recognized operator spellings.
func operatorFor(b []byte) FieldType {
	switch string(b) {
	case "!":
		return FTNot
	case "&":
		return FTAnd
	case "|":
		return FTOr
	case "=":
		return FTEq
	case "!=":
		return FTNeq
	case "<":
		return FTLt
	case ">":
		return FTGt
	case "<=":
		return FTLte
	case ">=":
		return FTGte
	case "?":
		return FTExst
	case "@":
		return FTType
	default:
		return FTNull
	}
}
