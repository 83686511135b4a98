package authapi

import "time"

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type deletedAccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// passwordRequirements mirrors the strength report: true means the
// class was satisfied.
type passwordRequirements struct {
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Number    bool `json:"number"`
	Special   bool `json:"special"`
}
