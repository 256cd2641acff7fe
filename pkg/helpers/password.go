package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain-text password with bcrypt. The salt is generated
// per call and embedded in the returned hash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the bcrypt hash.
// bcrypt's comparison is constant-time over the derived key, so the result
// does not leak how close a wrong guess was.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash is a valid bcrypt hash of a random string. Login flows compare
// against it when the email is unknown so both reject paths cost a hash
// verification, keeping response timing uniform.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// FakeCompare burns one bcrypt verification without revealing anything.
func FakeCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
