package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/utils"
)

// OTPService generates one-time codes and hands them to a delivery
// gateway. No SMS/email provider is wired yet, so delivery is simulated by
// logging the code; every issued code is still recorded with a hashed copy
// so a verification step can be added later.
type OTPService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewOTPService creates an OTPService.
func NewOTPService(db *gorm.DB, ttl time.Duration) *OTPService {
	return &OTPService{db: db, ttl: ttl}
}

// Issue generates a 6-digit code for the contact, persists its record, and
// dispatches it. The plaintext code is returned to the caller, which in
// this design relays it in the response.
func (s *OTPService) Issue(contactType, contact, mode string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", errors.Wrap(err, "generate otp code")
	}

	hash, err := utils.HashOTP(code)
	if err != nil {
		return "", errors.Wrap(err, "hash otp code")
	}

	request := models.OTPRequest{
		ContactType: contactType,
		Contact:     contact,
		Mode:        mode,
		CodeHash:    hash,
		ExpiresAt:   time.Now().Add(s.ttl),
	}

	if err := s.db.Create(&request).Error; err != nil {
		return "", errors.Wrap(err, "persist otp request")
	}

	s.deliver(contactType, contact, code)
	return code, nil
}

func (s *OTPService) deliver(contactType, contact, code string) {
	// Simulated gateway: real delivery would POST to an SMS/email provider.
	log.Printf("[OTP] %s %s -> code %s", contactType, contact, code)
}

func generateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
