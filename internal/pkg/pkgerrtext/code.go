package pkgerrtext

// Code is a stable, machine-readable error identifier.
type Code string

const (
	CodeUnknown              Code = "UNKNOWN"
	CodeRequestDidNotSucceed Code = "REQUEST.DID_NOT_SUCCEED"
	CodeRequestInvalidBody   Code = "REQUEST.INVALID_BODY"
	CodeNotFound             Code = "REQUEST.NOT_FOUND"
	CodeInternal             Code = "REQUEST.INTERNAL"
	CodeAuthNotAuthenticated Code = "AUTH.NOT_AUTHENTICATED"
	CodeFormNotYetValid      Code = "FORMS.NOT_YET_VALID"
	CodeFormNotFound         Code = "FORMS.NOT_FOUND"
	CodeFormInvalidField     Code = "FORMS.INVALID_FIELD"
)

// Strings converts codes to plain strings, keeping order.
func Strings(codes []Code) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, string(c))
	}
	return out
}
