package domain

type CredentialRequest struct {
	UserID    string `json:"user_id"`
	TripID    string `json:"trip_id"`
	KYCDigest string `json:"kyc_digest"`
	ValidTo   string `json:"valid_to"`
}

type CredentialSubject struct {
	ID         string `json:"id"`
	TripID     string `json:"trip_id"`
	KYCDigest  string `json:"kyc_digest"`
	SafetyTier string `json:"safety_tier"`
}

type VerifiableCredential struct {
	Context           []string          `json:"@context"`
	Type              []string          `json:"type"`
	Issuer            string            `json:"issuer"`
	IssuanceDate      string            `json:"issuanceDate"`
	ExpirationDate    string            `json:"expirationDate"`
	CredentialSubject CredentialSubject `json:"credentialSubject"`
}

type IssuedCredential struct {
	VC     VerifiableCredential `json:"vc"`
	VCHash string               `json:"vc_hash"`
	VCJWT  string               `json:"vc_jwt"`
}
