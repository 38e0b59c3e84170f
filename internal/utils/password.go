package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a member's password with the configured
// cost (BCRYPT_COST). Costs outside bcrypt's supported range fall back
// to the library default rather than failing registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash. The
// comparison is constant-time; login treats any mismatch or malformed
// hash as invalid credentials.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
