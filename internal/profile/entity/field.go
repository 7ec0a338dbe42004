package entity

import "github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"

// Field names an input of the security form. The names double as JSON keys
// of the update request.
type Field string

const (
	FieldCurPassword    Field = "cur_password"
	FieldNewPassword    Field = "new_password"
	FieldRepeatPassword Field = "repeat_password"
)

// Fields lists the form inputs in display order.
func Fields() []Field {
	return []Field{FieldCurPassword, FieldNewPassword, FieldRepeatPassword}
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	switch f {
	case FieldCurPassword, FieldNewPassword, FieldRepeatPassword:
		return true
	default:
		return false
	}
}

// ErrorKey groups field errors by the control they are rendered under.
type ErrorKey string

const (
	// ErrorKeyUser errors render under the current password control.
	ErrorKeyUser ErrorKey = "user"
	// ErrorKeyPassword errors render under the new and repeat controls.
	ErrorKeyPassword ErrorKey = "password"
)

// ErrorKeys lists the known error keys.
func ErrorKeys() []ErrorKey {
	return []ErrorKey{ErrorKeyUser, ErrorKeyPassword}
}

// Valid reports whether k is a known error key.
func (k ErrorKey) Valid() bool {
	return k == ErrorKeyUser || k == ErrorKeyPassword
}

const (
	CodePasswordTooShort        pkgerrtext.Code = "USER.PASSWORD.TOO_SHORT.8"
	CodePasswordEntirelyNumeric pkgerrtext.Code = "USER.PASSWORD.ENTIRELY_NUMERIC"
	CodePasswordMustMatch       pkgerrtext.Code = "USER.PASSWORD.MUST_MATCH"
	CodeCurPasswordIncorrect    pkgerrtext.Code = "USER.CUR_PASSWORD.INCORRECT"
)

// MinPasswordLength is the shortest accepted new password, in characters.
const MinPasswordLength = 8

// UpdatePath is the upstream route that changes the user's password.
const UpdatePath = "user/update"

// ChangedPassword is the body sent to UpdatePath.
type ChangedPassword struct {
	CurPassword    string `json:"cur_password"`
	NewPassword    string `json:"new_password"`
	RepeatPassword string `json:"repeat_password"`
}
