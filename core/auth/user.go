package auth

import "golang.org/x/crypto/bcrypt"

// User is the simulated backend's user record. Only the mock facade and the
// dev server ever see it; clients are handed the embedded Identity.
type User struct {
	Identity
	PasswordHash []byte `json:"passwordHash"`
	OTPEnabled   bool   `json:"otpEnabled"`
	Active       bool   `json:"active"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}
