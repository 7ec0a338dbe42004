package form

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

func TestTooShort(t *testing.T) {
	for n := 0; n < 20; n++ {
		value := strings.Repeat("a", n)
		if got, want := TooShort(value), n < 8; got != want {
			t.Fatalf("TooShort(len=%d) = %v, want %v", n, got, want)
		}
	}

	// Characters, not bytes.
	if TooShort("ñññññññññ") {
		t.Fatalf("expected 9 runes to be long enough")
	}
	if !TooShort("ñññ") {
		t.Fatalf("expected 3 runes to be too short")
	}
}

func TestEntirelyNumeric(t *testing.T) {
	numeric := []string{"", "0", "12345678", "0000000000000"}
	for _, v := range numeric {
		if !EntirelyNumeric(v) {
			t.Fatalf("expected %q to be numeric", v)
		}
	}

	mixed := []string{"a", "1234567a", "a1234567", "1234 5678", "１２３", "-1", "1.5"}
	for _, v := range mixed {
		if EntirelyNumeric(v) {
			t.Fatalf("expected %q not to be numeric", v)
		}
	}
}

func TestMismatch(t *testing.T) {
	cases := []struct {
		password, repeat string
		want             bool
	}{
		{"", "", false},
		{"abc", "", false},
		{"", "abc", false},
		{"abc", "abc", false},
		{"abc", "abd", true},
	}
	for _, tc := range cases {
		if got := Mismatch(tc.password, tc.repeat); got != tc.want {
			t.Fatalf("Mismatch(%q, %q) = %v, want %v", tc.password, tc.repeat, got, tc.want)
		}
	}
}

func TestValidateNewPassword(t *testing.T) {
	s := NewState()

	if got := ValidateNewPassword("abc", s); !slices.Equal(got, []pkgerrtext.Code{entity.CodePasswordTooShort}) {
		t.Fatalf("unexpected codes for short value: %v", got)
	}
	if got := ValidateNewPassword("1234", s); !slices.Equal(got, []pkgerrtext.Code{entity.CodePasswordTooShort, entity.CodePasswordEntirelyNumeric}) {
		t.Fatalf("unexpected codes for short numeric value: %v", got)
	}
	if got := ValidateNewPassword("longenough1", s); len(got) != 0 {
		t.Fatalf("expected no codes, got %v", got)
	}

	s.Values[entity.FieldRepeatPassword] = "something-else"
	if got := ValidateNewPassword("longenough1", s); !slices.Equal(got, []pkgerrtext.Code{entity.CodePasswordMustMatch}) {
		t.Fatalf("expected MUST_MATCH, got %v", got)
	}
}

func TestValidateRepeatPasswordSetSemantics(t *testing.T) {
	s := NewState()
	s.Values[entity.FieldNewPassword] = "longenough1"
	s.Errors[entity.ErrorKeyPassword] = []pkgerrtext.Code{entity.CodePasswordTooShort, entity.CodePasswordMustMatch}

	got := ValidateRepeatPassword("different", s)
	want := []pkgerrtext.Code{entity.CodePasswordTooShort, entity.CodePasswordMustMatch}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = ValidateRepeatPassword("longenough1", s)
	if !slices.Equal(got, []pkgerrtext.Code{entity.CodePasswordTooShort}) {
		t.Fatalf("expected MUST_MATCH removed, got %v", got)
	}

	got = ValidateRepeatPassword("", s)
	if slices.Contains(got, entity.CodePasswordMustMatch) {
		t.Fatalf("expected no MUST_MATCH for empty confirmation, got %v", got)
	}

	if !slices.Equal(s.Errors[entity.ErrorKeyPassword], want) {
		t.Fatalf("input state mutated: %v", s.Errors[entity.ErrorKeyPassword])
	}
}

func TestChangeUnknownField(t *testing.T) {
	if _, err := Change(NewState(), "username", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestChangeCurPasswordClearsUserErrors(t *testing.T) {
	s := NewState()
	s.Errors[entity.ErrorKeyUser] = []pkgerrtext.Code{entity.CodeCurPasswordIncorrect}

	act, err := Change(s, entity.FieldCurPassword, "secret")
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	next := Reduce(s, act)
	if got := next.FieldErrors(entity.ErrorKeyUser); len(got) != 0 {
		t.Fatalf("expected user errors cleared, got %v", got)
	}
	if next.Value(entity.FieldCurPassword) != "secret" {
		t.Fatalf("expected value stored")
	}
}

// apply types value into field the way the inbound handler does.
func apply(t *testing.T, s State, field entity.Field, value string) State {
	t.Helper()
	act, err := Change(s, field, value)
	if err != nil {
		t.Fatalf("Change(%s): %v", field, err)
	}
	return Reduce(s, act)
}

func TestMustMatchFollowsBothFields(t *testing.T) {
	has := func(s State) bool {
		return slices.Contains(s.FieldErrors(entity.ErrorKeyPassword), entity.CodePasswordMustMatch)
	}

	s := NewState()
	s = apply(t, s, entity.FieldNewPassword, "longenough1")
	if has(s) {
		t.Fatalf("MUST_MATCH fired before confirmation was typed")
	}

	s = apply(t, s, entity.FieldRepeatPassword, "longenough")
	if !has(s) {
		t.Fatalf("expected MUST_MATCH for differing confirmation")
	}

	s = apply(t, s, entity.FieldRepeatPassword, "longenough1")
	if has(s) {
		t.Fatalf("expected MUST_MATCH removed once equal")
	}

	s = apply(t, s, entity.FieldNewPassword, "longenough12")
	if !has(s) {
		t.Fatalf("expected MUST_MATCH after editing the primary field")
	}

	s = apply(t, s, entity.FieldRepeatPassword, "")
	if has(s) {
		t.Fatalf("expected MUST_MATCH removed when confirmation emptied")
	}

	s = apply(t, s, entity.FieldRepeatPassword, "x")
	s = apply(t, s, entity.FieldNewPassword, "x")
	if has(s) {
		t.Fatalf("expected MUST_MATCH removed when primary now matches")
	}
}

func TestMustMatchIffProperty(t *testing.T) {
	values := []string{"", "a", "longenough1", "longenough2", "12345678"}

	for _, first := range []entity.Field{entity.FieldNewPassword, entity.FieldRepeatPassword} {
		second := entity.FieldRepeatPassword
		if first == entity.FieldRepeatPassword {
			second = entity.FieldNewPassword
		}
		for _, a := range values {
			for _, b := range values {
				s := apply(t, NewState(), first, a)
				s = apply(t, s, second, b)

				pw, rp := s.Value(entity.FieldNewPassword), s.Value(entity.FieldRepeatPassword)
				want := pw != "" && rp != "" && pw != rp
				got := slices.Contains(s.FieldErrors(entity.ErrorKeyPassword), entity.CodePasswordMustMatch)
				if got != want {
					t.Fatalf("%s=%q then %s=%q: MUST_MATCH=%v, want %v", first, a, second, b, got, want)
				}
			}
		}
	}
}
