package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email through the configured SMTP server
func SendEmail(to, subject, body string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendOTPEmail sends a one-time password via email
func SendOTPEmail(to, otp string) error {
	body := fmt.Sprintf(`
		<h3>Welcome to GameOn Mart</h3>
		<p>Your OTP is <b style="font-size: 24px; letter-spacing: 4px;">%s</b>. It is valid for 10 minutes.</p>
		<p>If you didn't request this OTP, please ignore this email.</p>
	`, otp)

	return SendEmail(to, "Your OTP Code", body)
}
