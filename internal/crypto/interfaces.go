package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way hashes and checks
// candidates against stored hashes.
//
// Hash never returns the plaintext or an empty string on success; two calls
// with the same password produce different hashes (salted). Verify never
// fails loudly: a malformed or foreign hash simply does not match.
type PasswordHasher interface {
	// Hash returns a salted hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash.
	Verify(password, hash string) bool
}
