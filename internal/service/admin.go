package service

import (
	"crypto/subtle"

	"school-store/internal/hashing"
)

// AdminAuth проверяет единственную общую админскую пару логин/пароль.
// Пароль хранится в конфиге bcrypt-хэшем, не plaintext.
type AdminAuth struct {
	username     string
	passwordHash string
	hasher       *hashing.Bcrypt
}

func NewAdminAuth(username, passwordHash string) *AdminAuth {
	return &AdminAuth{
		username:     username,
		passwordHash: passwordHash,
		hasher:       hashing.NewBcrypt(0),
	}
}

func (a *AdminAuth) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := a.hasher.Compare(a.passwordHash, password)
	return userOK && passOK
}
