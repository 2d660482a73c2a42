package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

const (
	vcIssuer             = "did:web:saarthisuraksha.gov.in"
	defaultSafetyTier    = "gold"
	isoMillisLayout      = "2006-01-02T15:04:05.000Z"
	credentialContextW3C = "https://www.w3.org/2018/credentials/v1"
	credentialContextApp = "https://saarthisuraksha.gov.in/contexts/v1"
)

type CredentialService struct {
	secret []byte
	now    func() time.Time
}

func NewCredentialService(secret []byte) *CredentialService {
	return &CredentialService{secret: secret, now: time.Now}
}

type credentialClaims struct {
	VC     domain.VerifiableCredential `json:"vc"`
	VCHash string                      `json:"vc_hash"`
	jwt.RegisteredClaims
}

// Issue builds a trip credential, its SHA-256 digest over the JSON encoding
// and an HS256 signed JWT carrying both.
func (s *CredentialService) Issue(req domain.CredentialRequest) (*domain.IssuedCredential, error) {
	if req.UserID == "" || req.TripID == "" {
		return nil, fmt.Errorf("%w: user_id and trip_id required", ErrInvalidInput)
	}
	validTo, err := time.Parse(time.RFC3339, req.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("%w: valid_to: %v", ErrInvalidInput, err)
	}

	issued := s.now().UTC()
	vc := domain.VerifiableCredential{
		Context:        []string{credentialContextW3C, credentialContextApp},
		Type:           []string{"VerifiableCredential", "TouristTripCredential"},
		Issuer:         vcIssuer,
		IssuanceDate:   issued.Format(isoMillisLayout),
		ExpirationDate: req.ValidTo,
		CredentialSubject: domain.CredentialSubject{
			ID:         "did:uuid:" + req.UserID,
			TripID:     req.TripID,
			KYCDigest:  req.KYCDigest,
			SafetyTier: defaultSafetyTier,
		},
	}

	hash, err := HashCredential(vc)
	if err != nil {
		return nil, err
	}

	claims := credentialClaims{
		VC:     vc,
		VCHash: hash,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    vcIssuer,
			Subject:   vc.CredentialSubject.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(validTo),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign credential: %w", err)
	}

	return &domain.IssuedCredential{VC: vc, VCHash: hash, VCJWT: signed}, nil
}

// Verify checks the JWT signature and that the embedded hash matches the
// embedded credential.
func (s *CredentialService) Verify(token string) (*domain.VerifiableCredential, error) {
	var claims credentialClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := HashCredential(claims.VC)
	if err != nil {
		return nil, err
	}
	if hash != claims.VCHash {
		return nil, fmt.Errorf("%w: credential hash mismatch", ErrInvalidInput)
	}
	return &claims.VC, nil
}

func HashCredential(vc domain.VerifiableCredential) (string, error) {
	body, err := json.Marshal(vc)
	if err != nil {
		return "", fmt.Errorf("marshal credential: %w", err)
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}
