package domain

import (
	"fmt"
)

// ParticipantID identifies an ecosystem participant. IDs are caller-supplied
// and opaque to the core; uniqueness is enforced per store.
type ParticipantID string

func (id ParticipantID) String() string { return string(id) }

func (id ParticipantID) IsZero() bool { return id == "" }

// ParticipantType classifies an ecosystem actor by role.
// Invariant: the value must be one of the supported participant types.
//
// Usage: construct via ParseParticipantType at trust boundaries to enforce
// the allowlist; direct casting bypasses validation.
type ParticipantType string

// Supported participant types.
const (
	ParticipantCredentialServiceProvider     ParticipantType = "CREDENTIAL_SERVICE_PROVIDER"
	ParticipantAuthenticationServiceProvider ParticipantType = "AUTHENTICATION_SERVICE_PROVIDER"
	ParticipantIdentityProvider              ParticipantType = "IDENTITY_PROVIDER"
	ParticipantVerifier                      ParticipantType = "VERIFIER"
	ParticipantIssuer                        ParticipantType = "ISSUER"
	ParticipantWalletProvider                ParticipantType = "WALLET_PROVIDER"
	ParticipantTrustRegistry                 ParticipantType = "TRUST_REGISTRY"
	ParticipantRelyingParty                  ParticipantType = "RELYING_PARTY"
)

var participantTypes = map[ParticipantType]struct{}{
	ParticipantCredentialServiceProvider:     {},
	ParticipantAuthenticationServiceProvider: {},
	ParticipantIdentityProvider:              {},
	ParticipantVerifier:                      {},
	ParticipantIssuer:                        {},
	ParticipantWalletProvider:                {},
	ParticipantTrustRegistry:                 {},
	ParticipantRelyingParty:                  {},
}

// ParseParticipantType validates and returns a ParticipantType.
func ParseParticipantType(s string) (ParticipantType, error) {
	t := ParticipantType(s)
	if _, ok := participantTypes[t]; !ok {
		return "", fmt.Errorf("unknown participant type: %s", s)
	}
	return t, nil
}

func (t ParticipantType) String() string { return string(t) }

func (t ParticipantType) IsValid() bool {
	_, ok := participantTypes[t]
	return ok
}

// AssuranceLevel is the PCTF level-of-assurance tier. LOA1 is the lowest
// confidence, LOA4 the highest.
type AssuranceLevel string

const (
	LOA1 AssuranceLevel = "LOA1"
	LOA2 AssuranceLevel = "LOA2"
	LOA3 AssuranceLevel = "LOA3"
	LOA4 AssuranceLevel = "LOA4"
)

var assuranceOrder = map[AssuranceLevel]int{
	LOA1: 1,
	LOA2: 2,
	LOA3: 3,
	LOA4: 4,
}

// ParseAssuranceLevel validates and returns an AssuranceLevel.
func ParseAssuranceLevel(s string) (AssuranceLevel, error) {
	l := AssuranceLevel(s)
	if _, ok := assuranceOrder[l]; !ok {
		return "", fmt.Errorf("unknown assurance level: %s", s)
	}
	return l, nil
}

func (l AssuranceLevel) String() string { return string(l) }

func (l AssuranceLevel) IsValid() bool {
	_, ok := assuranceOrder[l]
	return ok
}

// AtLeast reports whether l meets or exceeds the given level.
// Unknown levels never satisfy the comparison.
func (l AssuranceLevel) AtLeast(min AssuranceLevel) bool {
	lo, ok1 := assuranceOrder[l]
	mo, ok2 := assuranceOrder[min]
	return ok1 && ok2 && lo >= mo
}
