package auth

import (
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// GenerateMFAKey issues a fresh TOTP secret for account enrollment. The
// returned key carries both the base32 secret and the otpauth:// URL the
// authenticator app consumes.
func GenerateMFAKey(account string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      "craftadmin",
		AccountName: account,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
}

// ValidateMFACode checks a 6-digit TOTP code against the stored secret.
func ValidateMFACode(code, secret string) bool {
	return secret != "" && totp.Validate(code, secret)
}
