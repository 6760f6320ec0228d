package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"golang.org/x/crypto/bcrypt"
)

// OTPValidity is how long a one-time password stays usable
const OTPValidity = 10 * time.Minute

// GenerateOTP returns a random 6-digit code
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %v", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// SendOtp issues a fresh OTP for the given email and action, replacing any
// earlier one, and mails the plain code. Only the bcrypt hash is stored.
func SendOtp(email, action string) error {
	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %v", err)
	}

	if err := config.DB.Where("email = ? AND action = ?", email, action).Delete(&models.Otp{}).Error; err != nil {
		return err
	}

	otp := models.Otp{
		Email:     email,
		Code:      string(hashed),
		Action:    action,
		ExpiresAt: time.Now().Add(OTPValidity),
	}
	if err := config.DB.Create(&otp).Error; err != nil {
		return err
	}

	return SendOTPEmail(email, code)
}

// VerifyOtp checks a submitted code against the stored hash for the given
// email and action. Expired codes are deleted on sight.
func VerifyOtp(email, code, action string) error {
	var otp models.Otp
	if err := config.DB.Where("email = ? AND action = ?", email, action).First(&otp).Error; err != nil {
		return BadRequestError("No OTP found or OTP expired", nil)
	}

	if otp.ExpiresAt.Before(time.Now()) {
		config.DB.Delete(&otp)
		return BadRequestError("OTP has expired. Please request a new one", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(otp.Code), []byte(code)); err != nil {
		return BadRequestError("Invalid OTP", nil)
	}

	return nil
}
