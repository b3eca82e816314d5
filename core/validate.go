package core

import "net/mail"

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input cap
)

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < minPasswordLen:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLen:
		return ErrPasswordTooLong
	}
	return nil
}

// Validate fails fast on malformed input before any store or hashing work.
func (in RegisterInput) Validate() error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

func (in LoginInput) Validate() error {
	if in.Email == "" {
		return ErrEmailRequired
	}
	if in.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func (in ResetRequestInput) Validate() error {
	return validateEmail(in.Email)
}

func (in UpdatePasswordInput) Validate() error {
	if in.Email == "" {
		return ErrEmailRequired
	}
	if in.OTP == "" {
		return ErrOTPRequired
	}
	return validatePassword(in.NewPassword)
}

func (in UpdateProfileInput) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	return nil
}
