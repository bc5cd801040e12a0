package cryptography
import (
	"fmt"	// for errors
	"strings"
	"runtime"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

/*
 * symmetric primitives used by the encrypted log mode.
 * payloads embedded into images are NEVER passed through here,
 * the column scheme carries plaintext on purpose.
 */

// chacha20poly1305 encryption+authentication
func Encrypt( data, key []byte ) ( []byte, error ) {

	if data == nil || len(data) == 0 {
		return nil, nil	// should we return an error here?
	}

	if key == nil || len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	nonce := make( []byte, chacha20poly1305.NonceSize )
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	if _, err := rand.Read( nonce ); err != nil {
		return nil, err
	}

	ct := aead.Seal( nil, nonce, data, nil )
	data = append( nonce, ct... )

	return data, nil
}

func Decrypt( data, key []byte ) ( []byte, error ) {

	if data == nil || len(data) == 0 {
		return nil, nil	// should we return an error here?
	}

	if key == nil || len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}

	if len(data) < chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("Invalid length of data")
	}

	nonce := data[:chacha20poly1305.NonceSize]
	data = data[chacha20poly1305.NonceSize:]
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open( nil, nonce, data, nil )
	return pt, err
}

// generate a random amount of bytes
func GenRandom( size uint ) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("[cryptography/common.go] GenRandom: Invalid size of random data")
	}
	data := make( []byte, size )
	if _, err := rand.Read( data ); err != nil {
		return nil, err
	}
	return data, nil
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt( password string ) ([]byte, []byte, error) {
	parts := strings.Split( password, ":" )
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("no salt supplied")
	} else if len(parts) > 2 {
		// consider the first ':' is a delimeter
		parts[1] = strings.Join(parts[1:], ":")
	}
	saltBytes, err := base64.StdEncoding.DecodeString( parts[0] )
	if err != nil {
		return nil, nil, err
	}

	return []byte( parts[1] ), saltBytes, nil
}

// derive encryption key from password. used for the encrypted log file
func DeriveKey( password, saltBytes []byte ) []byte {
	/*
	 * the draft RFC recommends time=3 and memory=32*1024 (32 MB) is a sensible number.
	 */
	threads := uint8(runtime.NumCPU())
	key := argon2.Key( password, saltBytes, 3, 32 * 1024, threads, SymKeySize )
	return key
}
