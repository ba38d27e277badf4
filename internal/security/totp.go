package security

import (
	"strings"

	"github.com/pquerna/otp/totp"
)

// totpIssuer labels generated secrets in authenticator apps.
const totpIssuer = "SalonFlow Admin"

// GenerateTOTPSecret creates a new TOTP secret for an admin account and
// returns the shared secret plus the otpauth provisioning URL.
func GenerateTOTPSecret(accountEmail string) (secret, url string, err error) {
	key, errGen := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: strings.TrimSpace(accountEmail),
	})
	if errGen != nil {
		return "", "", errGen
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTP checks a one-time code against a stored secret.
func ValidateTOTP(secret, code string) bool {
	secret = strings.TrimSpace(secret)
	code = strings.TrimSpace(code)
	if secret == "" || code == "" {
		return false
	}
	return totp.Validate(code, secret)
}
