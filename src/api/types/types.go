package types

import "time"

// Registered accounts
type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Subscription string    `gorm:"size:32;default:Free" json:"subscription"`
	UsageCount   int       `gorm:"default:5" json:"usage_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastReset    time.Time `json:"last_reset"`
}

// VerificationResult is the user-facing outcome of checking one claim.
// Both scoring strategies fill the same shape.
type VerificationResult struct {
	Statement        string   `json:"statement"`
	Verification     string   `json:"verification"`
	Confidence       float64  `json:"confidence"`
	Reason           string   `json:"reason,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	ArticlesAnalyzed int      `json:"articles_analyzed"`
}

// Verdict labels
const (
	VerdictLikelyTrue   = "Likely True"
	VerdictLikelyFalse  = "Likely False"
	VerdictUncertain    = "Uncertain"
	VerdictInconclusive = "Inconclusive"
)
