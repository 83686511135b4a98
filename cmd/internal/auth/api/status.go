package authapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"parley/cmd/identity"
	"parley/cmd/security/password"
)

// WriteAuthError renders an auth-domain error as a status code + body.
//
// Client-input problems carry enough structured detail to self-correct;
// infrastructure failures are logged with full detail and surfaced as
// an opaque 500.
func WriteAuthError(w http.ResponseWriter, log *slog.Logger, err error) {
	var invalidEmail identity.InvalidEmailError
	var emailTaken identity.EmailTakenError
	var emailNotFound identity.EmailNotFoundError
	var tooShort password.TooShortError
	var weak password.WeakPasswordError

	switch {
	case errors.As(err, &invalidEmail):
		WriteError(w, http.StatusBadRequest, "invalid_email",
			fmt.Sprintf("Email %q is not a valid email address.", invalidEmail.Email))

	case errors.As(err, &emailTaken):
		WriteError(w, http.StatusConflict, "email_taken",
			fmt.Sprintf("Email %q is already taken. Choose a different email, or sign in.", emailTaken.Email))

	case errors.As(err, &tooShort):
		WriteError(w, http.StatusBadRequest, "password_too_short",
			fmt.Sprintf("Password must be at least %d characters long; you provided %d.",
				tooShort.MinLength, tooShort.ActualLength))

	case errors.As(err, &weak):
		WriteJSON(w, http.StatusBadRequest, struct {
			Error        apiError             `json:"error"`
			Requirements passwordRequirements `json:"requirements"`
		}{
			Error: apiError{Code: "password_too_weak", Message: "Password must contain a lowercase letter, an uppercase letter, a number, and a special character."},
			Requirements: passwordRequirements{
				Lowercase: weak.HasLowercase,
				Uppercase: weak.HasUppercase,
				Number:    weak.HasNumber,
				Special:   weak.HasSpecial,
			},
		})

	case errors.As(err, &emailNotFound):
		WriteError(w, http.StatusNotFound, "email_not_found",
			fmt.Sprintf("Email %q not found.", emailNotFound.Email))

	case identity.IsWrongPassword(err):
		WriteError(w, http.StatusUnauthorized, "wrong_password",
			"Password incorrect. Double-check your credentials and try again.")

	case identity.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "not_found", "Resource not found.")

	default:
		if log != nil {
			log.Error("auth.internal_error", "err", err)
		}
		WriteError(w, http.StatusInternalServerError, "internal", "An unknown error occurred.")
	}
}
