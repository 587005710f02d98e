package sqlparam

import (
	"crypto"
	"crypto/x509"
	"log/slog"
	"slices"
)

// KeyStore is the subset of platform key-manager operations needed for TLS
// certificate selection. Issuers are raw distinguished-name encodings, as
// handed out by the TLS stack during the handshake.
type KeyStore interface {
	// ClientAliases lists the aliases valid for client authentication with
	// the given key type and issuer set.
	ClientAliases(keyType string, issuers [][]byte) []string
	// ServerAliases lists the aliases valid for server authentication with
	// the given key type and issuer set.
	ServerAliases(keyType string, issuers [][]byte) []string
	// ChooseClientAlias performs the store's own default client selection.
	ChooseClientAlias(keyTypes []string, issuers [][]byte) string
	// ChooseServerAlias performs the store's own default server selection.
	ChooseServerAlias(keyType string, issuers [][]byte) string
	// CertificateChain returns the certificate chain for an alias, or nil.
	CertificateChain(alias string) []*x509.Certificate
	// PrivateKey returns the private key for an alias, or nil.
	PrivateKey(alias string) crypto.PrivateKey
}

// AliasSelector pins TLS certificate selection to a preferred alias. It
// wraps any KeyStore and forwards every operation to it, overriding only
// the two choose operations: the preferred alias is returned when the
// wrapped store lists it as valid for the requested key type and issuers.
// Otherwise the client side falls back to the store's default selection and
// the server side reports no match. With no preferred alias configured the
// selector is transparent.
type AliasSelector struct {
	source KeyStore
	alias  string
}

var _ KeyStore = (*AliasSelector)(nil)

// NewAliasSelector wraps source, preferring alias. An empty alias disables
// the override.
func NewAliasSelector(source KeyStore, alias string) *AliasSelector {
	return &AliasSelector{source: source, alias: alias}
}

func (s *AliasSelector) ChooseClientAlias(keyTypes []string, issuers [][]byte) string {
	if s.alias == "" || keyTypes == nil {
		return s.source.ChooseClientAlias(keyTypes, issuers)
	}
	for _, kt := range keyTypes {
		if slices.Contains(s.source.ClientAliases(kt, issuers), s.alias) {
			slog.Debug("sqlparam: preferred client alias found", "alias", s.alias, "keyType", kt)
			return s.alias
		}
	}
	slog.Debug("sqlparam: preferred client alias not valid, deferring to store", "alias", s.alias)
	return s.source.ChooseClientAlias(keyTypes, issuers)
}

func (s *AliasSelector) ChooseServerAlias(keyType string, issuers [][]byte) string {
	if s.alias == "" {
		return s.source.ChooseServerAlias(keyType, issuers)
	}
	if slices.Contains(s.source.ServerAliases(keyType, issuers), s.alias) {
		slog.Debug("sqlparam: preferred server alias found", "alias", s.alias, "keyType", keyType)
		return s.alias
	}
	// Not a failure: the alias may still exist under another key type.
	slog.Debug("sqlparam: preferred server alias not found for key type", "alias", s.alias, "keyType", keyType)
	return ""
}

func (s *AliasSelector) ClientAliases(keyType string, issuers [][]byte) []string {
	return s.source.ClientAliases(keyType, issuers)
}

func (s *AliasSelector) ServerAliases(keyType string, issuers [][]byte) []string {
	return s.source.ServerAliases(keyType, issuers)
}

func (s *AliasSelector) CertificateChain(alias string) []*x509.Certificate {
	return s.source.CertificateChain(alias)
}

func (s *AliasSelector) PrivateKey(alias string) crypto.PrivateKey {
	return s.source.PrivateKey(alias)
}
