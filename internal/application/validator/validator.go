package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"notes-blog-service/internal/custom_errors"
	model "notes-blog-service/internal/domain/models"
)

const (
	MinPhoneDigits    = 6
	MaxPhoneDigits    = 36
	MinUsernameLength = 1
	MaxUsernameLength = 36
	MinPasswordLength = 8
)

const (
	MsgEmailRequired     = "Email is required."
	MsgEmailFormat       = "Invalid email format. Please use correct email format."
	MsgPhoneRequired     = "Phone number is required."
	MsgPhoneFormat       = "Invalid phone number. Please use right format for phone number."
	MsgUsernameLength    = "Username must be between 1 and 36 characters long."
	MsgUsernameCharset   = "Username may only contain letters, digits, '_', '-' and '.'."
	MsgPasswordRequired  = "Password is required."
	MsgPasswordLength    = "Password must be at least 8 characters long."
	MsgPasswordLowercase = "Password must contain at least one lowercase letter."
	MsgPasswordUppercase = "Password must contain at least one uppercase letter."
	MsgPasswordDigit     = "Password must contain at least one digit."
	MsgPasswordMismatch  = "Passwords in both fields should be same."
	MsgPostTitleRequired = "Title is required."
)

const (
	fieldEmail            = "email"
	fieldPhoneNumber      = "phone_number"
	fieldUsername         = "username"
	fieldPassword         = "password"
	fieldPasswordConfirm  = "password_confirmation"
	fieldTitle            = "title"
	phoneSeparatorCutset  = "- +"
	usernameAllowedSymbol = "_-."
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9.-]{1,30}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return custom_errors.NewValidationError(fieldEmail, MsgEmailRequired)
	}
	if !emailPattern.MatchString(email) {
		return custom_errors.NewValidationError(fieldEmail, MsgEmailFormat)
	}
	return nil
}

// ValidatePhoneNumber ignores '-', '+' and spaces; what remains must be 6 to 36 ASCII digits.
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return custom_errors.NewValidationError(fieldPhoneNumber, MsgPhoneRequired)
	}
	digits := strings.Map(func(r rune) rune {
		if strings.ContainsRune(phoneSeparatorCutset, r) {
			return -1
		}
		return r
	}, phone)
	if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits {
		return custom_errors.NewValidationError(fieldPhoneNumber, MsgPhoneFormat)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return custom_errors.NewValidationError(fieldPhoneNumber, MsgPhoneFormat)
		}
	}
	return nil
}

func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return custom_errors.NewValidationError(fieldUsername, MsgUsernameLength)
	}
	for _, r := range username {
		if !isASCIIAlnum(r) && !strings.ContainsRune(usernameAllowedSymbol, r) {
			return custom_errors.NewValidationError(fieldUsername, MsgUsernameCharset)
		}
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return custom_errors.NewValidationError(fieldPassword, MsgPasswordRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return custom_errors.NewValidationError(fieldPassword, MsgPasswordLength)
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower {
		return custom_errors.NewValidationError(fieldPassword, MsgPasswordLowercase)
	}
	if !upper {
		return custom_errors.NewValidationError(fieldPassword, MsgPasswordUppercase)
	}
	if !digit {
		return custom_errors.NewValidationError(fieldPassword, MsgPasswordDigit)
	}
	return nil
}

func ValidatePasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return custom_errors.NewValidationError(fieldPasswordConfirm, MsgPasswordMismatch)
	}
	return nil
}

// ValidateRegistration returns the first failing rule, checked in the order
// confirmation, email, phone number, username, password.
func ValidateRegistration(dto *model.RegisterDTO) error {
	checks := []func() error{
		func() error { return ValidatePasswordConfirmation(dto.Password, dto.PasswordConfirmation) },
		func() error { return ValidateEmail(dto.Email) },
		func() error { return ValidatePhoneNumber(dto.PhoneNumber) },
		func() error { return ValidateUsername(dto.Username) },
		func() error { return ValidatePassword(dto.Password) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func ValidatePostTitle(title string) error {
	if title == "" {
		return custom_errors.NewValidationError(fieldTitle, MsgPostTitleRequired)
	}
	return nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
