package adapter

// CredentialHasher protects the secret a user signs in with. Only the hash
// is ever persisted on the user.
type CredentialHasher interface {
	// Hash derives the stored form of secret.
	Hash(secret string) (string, error)

	// Matches reports whether secret produces hash.
	Matches(hash, secret string) bool

	// CheckPolicy rejects secrets that cannot be accepted at sign up.
	CheckPolicy(secret string) error
}
