// Package users persists accounts and checks credentials.
package users

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/truthlens/truthlens/src/api/types"
)

const defaultUsageQuota = 5

var (
	ErrEmailExists = errors.New("email already exists")
	ErrNotFound    = errors.New("user not found")
	ErrBadPassword = errors.New("invalid password")
)

type Service struct {
	db     *gorm.DB
	hasher Hasher
}

func NewService(db *gorm.DB, h Hasher) *Service {
	return &Service{db: db, hasher: h}
}

// Register inserts a new account. A duplicate email is rejected by the
// store's unique index, never overwritten.
func (s *Service) Register(name, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	u := types.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Subscription: "Free",
		UsageCount:   defaultUsageQuota,
		LastReset:    time.Now(),
	}
	if err := s.db.Create(&u).Error; err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// isDuplicate also matches on driver error text since not every dialect
// translates constraint violations to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "Duplicate entry")
}

// Authenticate looks the account up by email and compares the password
// through the configured hasher.
func (s *Service) Authenticate(email, password string) (types.User, error) {
	u, err := s.Get(email)
	if err != nil {
		return types.User{}, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return types.User{}, ErrBadPassword
	}
	return u, nil
}

func (s *Service) Get(email string) (types.User, error) {
	var u types.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return u, nil
}

// ResetDailyUsage restores the free-tier quota for rows whose last reset
// predates today. Reported count is the number of rows touched.
func (s *Service) ResetDailyUsage() (int64, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	res := s.db.Model(&types.User{}).
		Where("last_reset < ?", today).
		Updates(map[string]interface{}{
			"usage_count": defaultUsageQuota,
			"last_reset":  now,
		})
	return res.RowsAffected, res.Error
}
