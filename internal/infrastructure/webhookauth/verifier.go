package webhookauth

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	apperrors "lldgw/internal/shared/errors"
	"lldgw/internal/shared/logger"
)

// Verifier authenticates webhook deliveries with an RSA signature over the
// raw request body. In debug mode authentication is bypassed entirely; that
// mode must never be enabled in production.
type Verifier struct {
	publicKey *rsa.PublicKey
	debugMode bool
	logger    logger.Interface
}

// NewVerifier parses the PEM-encoded RSA public key. An empty key is only
// acceptable in debug mode.
func NewVerifier(publicKeyPEM string, debugMode bool, log logger.Interface) (*Verifier, error) {
	v := &Verifier{debugMode: debugMode, logger: log}

	if publicKeyPEM == "" {
		if !debugMode {
			return nil, fmt.Errorf("webhook public key is required outside debug mode")
		}
		log.Warnw("webhook signature verification disabled: no public key configured")
		return v, nil
	}

	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block from webhook public key")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook public key: %w", err)
	}

	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("webhook public key is not an RSA key")
	}

	v.publicKey = rsaKey
	return v, nil
}

// Authenticate checks the base64 signature against the raw body. A missing
// signature is rejected like an invalid one.
func (v *Verifier) Authenticate(body []byte, signatureB64 string) error {
	if v.debugMode {
		v.logger.Warnw("debug mode: skipping webhook signature verification")
		return nil
	}

	if signatureB64 == "" {
		return apperrors.NewUnauthorizedError("missing webhook signature")
	}
	if v.publicKey == nil {
		return apperrors.NewUnauthorizedError("webhook public key not configured")
	}

	signature, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return apperrors.NewUnauthorizedError("malformed webhook signature")
	}

	digest := sha256.Sum256(body)
	if err := rsa.VerifyPKCS1v15(v.publicKey, crypto.SHA256, digest[:], signature); err != nil {
		return apperrors.NewUnauthorizedError("invalid webhook signature")
	}

	return nil
}
