package cryptography
import (
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// symmetric encryption parameters for the log-at-rest mode
	SymKeySize = 32
	NonceSize = chacha20poly1305.NonceSize
	SaltSize = 16
)
