package entity

import "time"

// PendingAccount is a registration awaiting email verification. The store
// expires it on its own once the verification window has passed.
type PendingAccount struct {
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	// Nonce is the id of the only verification token that may promote this record.
	Nonce        string    `json:"nonce"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Promote turns the pending registration into a verified Account.
func (p *PendingAccount) Promote(now time.Time) *Account {
	return &Account{
		FullName:     p.FullName,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Role:         RoleOrDefault(p.Role),
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
