package registry

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the length of an r || s || v signature
const SignatureLength = crypto.SignatureLength

// VerifySignature checks that signature is a personal-message signature of
// message by the key controlling claimedAddress. Addresses compare
// case-insensitively. Malformed input of any kind yields false
func VerifySignature(message, signature, claimedAddress string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("signature verification panic: %v", r)
			ok = false
		}
	}()

	recovered, err := RecoverAddress(message, signature)
	if err != nil {
		log.Debugf("signature verification error: %s", err)
		return false
	}
	return strings.EqualFold(recovered, strings.TrimSpace(claimedAddress))
}

// RecoverAddress returns the hex address that produced signature over the
// personal-message hash of message
func RecoverAddress(message, signature string) (string, error) {
	sig, err := decodeSignature(signature)
	if err != nil {
		return "", err
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

func decodeSignature(signature string) ([]byte, error) {
	signature = strings.TrimSpace(signature)
	if !strings.HasPrefix(signature, "0x") && !strings.HasPrefix(signature, "0X") {
		signature = "0x" + signature
	}
	sig, err := hexutil.Decode(strings.ToLower(signature))
	if err != nil {
		return nil, fmt.Errorf("decoding signature: %w", err)
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("invalid signature length %d, expected %d", len(sig), SignatureLength)
	}
	// wallets emit v as 27/28, recovery expects 0/1
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	return sig, nil
}

// SignMessage produces a 0x-prefixed personal-message signature with v in
// {27, 28}, the form wallets return from personal_sign
func SignMessage(message string, key *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// ParsePrivateKey decodes a hex secp256k1 private key, with or without a 0x
// prefix
func ParsePrivateKey(hexkey string) (*ecdsa.PrivateKey, error) {
	hexkey = strings.TrimPrefix(strings.TrimSpace(hexkey), "0x")
	key, err := crypto.HexToECDSA(hexkey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// KeyAddress returns the hex address controlled by key
func KeyAddress(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}
