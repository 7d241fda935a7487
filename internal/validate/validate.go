// Package validate holds the client-side input checks shared by the TUI
// forms and the CLI. The server re-validates everything; these only keep
// obviously bad input off the network.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Result is what a field shows under its input.
type Result struct {
	IsError bool
	Message string
}

// Validator checks a raw field value.
type Validator func(value string) Result

var ok = Result{}

func fail(msg string) Result { return Result{IsError: true, Message: msg} }

const (
	NameMin        = 3
	NameMax        = 32
	PasswordMin    = 6
	PasswordMax    = 64
	ListNameMin    = 3
	TaskTitleMin   = 3
	TaskTitleMax   = 32
	DescriptionMax = 256

	loginEmailMin    = 4
	loginPasswordMin = 3
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9+_.-]+$`)

// Length reports too short / too long against rune bounds. Empty input is
// not an error; max <= 0 disables the upper bound.
func Length(value string, min, max int, tooShort, tooLong string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return ok
	}
	n := utf8.RuneCountInString(value)
	if n < min {
		return fail(tooShort)
	}
	if max > 0 && n > max {
		return fail(tooLong)
	}
	return ok
}

func LoginEmail(value string) Result {
	return Length(value, loginEmailMin, 0, "This email is too short.", "")
}

func LoginPassword(value string) Result {
	return Length(value, loginPasswordMin, 0, "The password is too short.", "")
}

func RegisterName(value string) Result {
	return Length(value, NameMin, NameMax,
		"The name has to be at least 3 characters long.",
		"The name can be maximum 32 characters long.")
}

// RegisterEmail rejects empty input too.
func RegisterEmail(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("Please enter your email address.")
	}
	if !emailPattern.MatchString(value) {
		return fail("Please enter a valid email address.")
	}
	return ok
}

func RegisterPassword(value string) Result {
	return Length(value, PasswordMin, PasswordMax,
		"The password has to be at least 6 characters long.",
		"The password can be maximum 64 characters long.")
}

// ListName never shows an error; ListNameReady gates the create action.
func ListName(string) Result { return ok }

// ListNameReady reports whether the trimmed name is long enough to create.
func ListNameReady(value string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= ListNameMin
}

func TaskTitle(value string) Result {
	return Length(value, TaskTitleMin, TaskTitleMax,
		"The title has to be at least 3 characters long.",
		"The title can be maximum 32 characters long.")
}

func TaskDescription(value string) Result {
	return Length(value, 0, DescriptionMax, "",
		"The description can be maximum 256 characters long.")
}

// Field pairs a value with its latest result.
type Field struct {
	Value  string
	Result Result
}

// CanSubmit is true only when every field is non-empty after trim and
// reports no error.
func CanSubmit(fields ...Field) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" || f.Result.IsError {
			return false
		}
	}
	return true
}

// Check runs v over value and returns the Field.
func Check(value string, v Validator) Field {
	return Field{Value: value, Result: v(value)}
}
