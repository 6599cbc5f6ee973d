package store

import "time"

// User is a registered account.
type User struct {
	ID                int64      `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	IsVerified        bool       `json:"is_verified"`
	VerificationToken string     `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
}

// Chat is one answered question.
type Chat struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}

// Form is one generated legal document.
type Form struct {
	ID        int64             `json:"id"`
	FormType  string            `json:"form_type"`
	FormText  string            `json:"form_text"`
	Responses map[string]string `json:"responses"`
	Timestamp time.Time         `json:"timestamp"`
}
