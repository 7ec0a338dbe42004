package form

import (
	"errors"
	"slices"
	"unicode/utf8"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

// ErrUnknownField is returned by Change for a field the form does not have.
var ErrUnknownField = errors.New("unknown form field")

// TooShort reports whether value has fewer than MinPasswordLength characters.
func TooShort(value string) bool {
	return utf8.RuneCountInString(value) < entity.MinPasswordLength
}

// EntirelyNumeric reports whether value is made only of ASCII digits. The
// empty string counts.
func EntirelyNumeric(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// Mismatch reports whether both passwords are filled in and differ. An
// empty confirmation never mismatches.
func Mismatch(password, repeat string) bool {
	return password != "" && repeat != "" && password != repeat
}

// ValidateNewPassword returns the password errors for a new value of the
// new_password field.
func ValidateNewPassword(value string, s State) []pkgerrtext.Code {
	codes := []pkgerrtext.Code{}
	if TooShort(value) {
		codes = append(codes, entity.CodePasswordTooShort)
	}
	if EntirelyNumeric(value) {
		codes = append(codes, entity.CodePasswordEntirelyNumeric)
	}
	if Mismatch(value, s.Value(entity.FieldRepeatPassword)) {
		codes = append(codes, entity.CodePasswordMustMatch)
	}
	return codes
}

// ValidateRepeatPassword returns the password errors for a new value of the
// repeat_password field: the current list with MUST_MATCH added or removed.
func ValidateRepeatPassword(value string, s State) []pkgerrtext.Code {
	codes := dedupe(s.Errors[entity.ErrorKeyPassword])
	codes = slices.DeleteFunc(codes, func(c pkgerrtext.Code) bool {
		return c == entity.CodePasswordMustMatch
	})
	if Mismatch(s.Value(entity.FieldNewPassword), value) {
		codes = append(codes, entity.CodePasswordMustMatch)
	}
	return codes
}

// Change validates an edit of a single field against s and returns the
// action recording it. Only the edited field is validated; the match rule
// looks at both password fields whichever one changed.
func Change(s State, field entity.Field, value string) (SetFieldData, error) {
	act := SetFieldData{Values: map[entity.Field]string{field: value}}

	switch field {
	case entity.FieldCurPassword:
		act.Errors = map[entity.ErrorKey][]pkgerrtext.Code{entity.ErrorKeyUser: {}}
	case entity.FieldNewPassword:
		act.Errors = map[entity.ErrorKey][]pkgerrtext.Code{entity.ErrorKeyPassword: ValidateNewPassword(value, s)}
	case entity.FieldRepeatPassword:
		act.Errors = map[entity.ErrorKey][]pkgerrtext.Code{entity.ErrorKeyPassword: ValidateRepeatPassword(value, s)}
	default:
		return SetFieldData{}, ErrUnknownField
	}

	return act, nil
}
