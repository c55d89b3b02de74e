package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/jwlee-dev/memopad/internal/apperr"
)

// User-facing validation messages, surfaced verbatim by the API.
const (
	MsgInvalidEmail  = "올바른 이메일을 입력해 주세요."
	MsgShortPassword = "비밀번호는 6자 이상이어야 합니다."
	MsgLongName      = "이름은 50자 이하여야 합니다."
)

// Credentials is a normalized signup payload.
type Credentials struct {
	Email    string
	Password string
	Name     string // optional, empty when absent
}

// ValidateSignup checks a candidate signup payload. Rules are applied in
// order and the first failure wins: the email must be a well-formed
// address, the password at least 6 characters, and the name, when present,
// at most 50 characters. On failure it returns an apperr.Validation
// carrying the user-facing message and no partial result.
func ValidateSignup(email, password, name string) (Credentials, error) {
	if err := validation.Validate(email,
		validation.Required.Error(MsgInvalidEmail),
		is.EmailFormat.Error(MsgInvalidEmail),
	); err != nil {
		return Credentials{}, apperr.NewValidation(MsgInvalidEmail)
	}
	if err := validation.Validate(password,
		validation.Required.Error(MsgShortPassword),
		validation.RuneLength(6, 0).Error(MsgShortPassword),
	); err != nil {
		return Credentials{}, apperr.NewValidation(MsgShortPassword)
	}
	if name != "" {
		if err := validation.Validate(name,
			validation.RuneLength(0, 50).Error(MsgLongName),
		); err != nil {
			return Credentials{}, apperr.NewValidation(MsgLongName)
		}
	}
	return Credentials{Email: email, Password: password, Name: name}, nil
}
