package auth

import (
	"github.com/mafgems/api/internal/config"
	"github.com/rs/zerolog"
)

// NewSupabaseVerifier builds a verifier from whatever the project config provides:
// the asymmetric key set when an issuer or project URL is known, then the legacy
// JWT secret. It returns nil when neither is configured.
func NewSupabaseVerifier(cfg config.SupabaseConfig, log zerolog.Logger) TokenVerifier {
	var chain Chain

	issuer := cfg.JWKSIssuer
	if issuer == "" {
		issuer = IssuerFromProjectURL(cfg.URL)
	}
	if issuer != "" {
		v, err := NewJWKSVerifier(issuer)
		if err != nil {
			log.Warn().Err(err).Str("issuer", issuer).Msg("[Auth] JWKS unavailable")
		} else {
			chain = append(chain, v)
		}
	}

	if cfg.JWTSecret != "" {
		chain = append(chain, NewHMACVerifier(cfg.JWTSecret))
	}

	if len(chain) == 0 {
		return nil
	}
	return chain
}
