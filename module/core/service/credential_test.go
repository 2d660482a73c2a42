package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

func newTestCredentialService(secret string) *CredentialService {
	svc := NewCredentialService([]byte(secret))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

var testCredentialRequest = domain.CredentialRequest{
	UserID:    "user-1",
	TripID:    "trip-1",
	KYCDigest: "sha256:abc",
	ValidTo:   "2025-09-30T00:00:00Z",
}

func TestIssue_Credential(t *testing.T) {
	svc := newTestCredentialService("secret")

	issued, err := svc.Issue(testCredentialRequest)
	require.NoError(t, err)

	vc := issued.VC
	assert.Equal(t, []string{"https://www.w3.org/2018/credentials/v1", "https://saarthisuraksha.gov.in/contexts/v1"}, vc.Context)
	assert.Equal(t, []string{"VerifiableCredential", "TouristTripCredential"}, vc.Type)
	assert.Equal(t, "did:web:saarthisuraksha.gov.in", vc.Issuer)
	assert.Equal(t, "2025-09-20T10:00:00.000Z", vc.IssuanceDate)
	assert.Equal(t, "2025-09-30T00:00:00Z", vc.ExpirationDate)
	assert.Equal(t, "did:uuid:user-1", vc.CredentialSubject.ID)
	assert.Equal(t, "gold", vc.CredentialSubject.SafetyTier)

	hash, err := HashCredential(vc)
	require.NoError(t, err)
	assert.Equal(t, hash, issued.VCHash)
	assert.Len(t, issued.VCHash, 64)
	assert.NotEmpty(t, issued.VCJWT)
}

func TestIssue_Deterministic(t *testing.T) {
	svc := newTestCredentialService("secret")

	a, err := svc.Issue(testCredentialRequest)
	require.NoError(t, err)
	b, err := svc.Issue(testCredentialRequest)
	require.NoError(t, err)
	assert.Equal(t, a.VCHash, b.VCHash)
}

func TestIssue_InvalidRequest(t *testing.T) {
	svc := newTestCredentialService("secret")

	tests := []struct {
		name string
		req  domain.CredentialRequest
	}{
		{"missing user", domain.CredentialRequest{TripID: "trip-1", ValidTo: "2025-09-30T00:00:00Z"}},
		{"missing trip", domain.CredentialRequest{UserID: "user-1", ValidTo: "2025-09-30T00:00:00Z"}},
		{"bad valid_to", domain.CredentialRequest{UserID: "user-1", TripID: "trip-1", ValidTo: "tomorrow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Issue(tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	svc := newTestCredentialService("secret")

	issued, err := svc.Issue(testCredentialRequest)
	require.NoError(t, err)

	vc, err := svc.Verify(issued.VCJWT)
	require.NoError(t, err)
	assert.Equal(t, issued.VC, *vc)
}

func TestVerify_WrongSecret(t *testing.T) {
	issued, err := newTestCredentialService("secret").Issue(testCredentialRequest)
	require.NoError(t, err)

	_, err = newTestCredentialService("other").Verify(issued.VCJWT)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestCredentialService("secret")
	issued, err := svc.Issue(testCredentialRequest)
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.AddDate(0, 1, 0) }
	_, err = svc.Verify(issued.VCJWT)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerify_TamperedHash(t *testing.T) {
	svc := newTestCredentialService("secret")
	issued, err := svc.Issue(testCredentialRequest)
	require.NoError(t, err)

	claims := credentialClaims{
		VC:     issued.VC,
		VCHash: "deadbeef",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
