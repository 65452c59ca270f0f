package dto

// UserMessage acknowledges an action on the user with Email.
type UserMessage struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Profile is the public view of the session's user.
type Profile struct {
	Email string `json:"email"`
}

// ResetToken carries a freshly issued password reset token.
type ResetToken struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}
