package auth

// ProviderKind identifies a built-in credential refresh mechanism. The set is
// closed: unknown kinds fail configuration validation instead of being looked
// up dynamically.
type ProviderKind string

const (
	// KindNone disables refresh; the credential is used as-is.
	KindNone ProviderKind = ""
	// KindToken re-reads a static token value or token file.
	KindToken ProviderKind = "token"
	// KindOAuth2 obtains a token via the OAuth2 client-credentials grant.
	KindOAuth2 ProviderKind = "oauth2"
	// KindExec runs a user-configured command and uses its output as token.
	KindExec ProviderKind = "exec"
)

// Known reports whether kind names a built-in provider or no provider at all.
func (k ProviderKind) Known() bool {
	switch k {
	case KindNone, KindToken, KindOAuth2, KindExec:
		return true
	}
	return false
}

// ProviderConfig holds opaque provider settings; the keys a provider reads
// are documented on the provider implementation.
type ProviderConfig map[string]string

// Credential is a bearer token together with the binding describing how to
// obtain a replacement. Credentials are immutable values; a refresh produces
// a new Credential rather than mutating the old one.
type Credential struct {
	Token  string
	Kind   ProviderKind
	Config ProviderConfig
}

// Refreshable reports whether the credential carries a refresh binding.
func (c *Credential) Refreshable() bool {
	return c != nil && c.Kind != KindNone
}

// WithToken returns a copy of the credential carrying token, preserving the
// refresh binding.
func (c *Credential) WithToken(token string) *Credential {
	return &Credential{Token: token, Kind: c.Kind, Config: c.Config}
}
