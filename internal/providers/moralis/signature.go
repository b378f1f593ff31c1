package moralis

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// VerifySignature checks a webhook delivery's x-signature header. The
// provider signs as keccak256(body + secret), hex-encoded with 0x prefix.
func VerifySignature(body []byte, secret string, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	payload := make([]byte, 0, len(body)+len(secret))
	payload = append(payload, body...)
	payload = append(payload, []byte(secret)...)

	expected := crypto.Keccak256Hash(payload).Hex()
	return strings.EqualFold(expected, signature)
}
