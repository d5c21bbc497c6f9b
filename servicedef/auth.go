package servicedef

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken string `json:"access_token"`
}

// AuthResponse is the body of a successful POST /auth/signup or POST /auth/login.
type AuthResponse struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// SessionResponse is the body of GET /auth/session. User is nil when no one is logged in.
type SessionResponse struct {
	User   *User `json:"user"`
	IsDemo bool  `json:"isDemo,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
