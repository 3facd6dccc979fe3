package tool

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SignMessage signs a message with a secp256k1 private key and returns
// the DER signature hex encoded. The message is double-sha256 hashed
// before signing.
func SignMessage(message, privateKeyHex string) (string, error) {
	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("decode private key: %w", err)
	}

	privateKey, _ := btcec.PrivKeyFromBytes(privateKeyBytes)
	messageHash := chainhash.DoubleHashB([]byte(message))
	signature := ecdsa.Sign(privateKey, messageHash)

	return hex.EncodeToString(signature.Serialize()), nil
}

// VerifySign checks a hex DER signature over a message against a
// compressed secp256k1 public key.
func VerifySign(message, signHex, publicKeyHex string) (bool, error) {
	publicKeyBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false, fmt.Errorf("decode public key: %w", err)
	}
	publicKey, err := btcec.ParsePubKey(publicKeyBytes)
	if err != nil {
		return false, fmt.Errorf("parse public key: %w", err)
	}

	signBytes, err := hex.DecodeString(signHex)
	if err != nil {
		return false, fmt.Errorf("decode signature: %w", err)
	}
	signature, err := ecdsa.ParseDERSignature(signBytes)
	if err != nil {
		return false, fmt.Errorf("parse signature: %w", err)
	}

	messageHash := chainhash.DoubleHashB([]byte(message))
	return signature.Verify(messageHash, publicKey), nil
}
