package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/config"
	"github.com/traveljournal/journal-server/internal/id"
	"github.com/traveljournal/journal-server/internal/logger"
)

// ephemeralSecretLength is the length of a generated development JWT secret.
const ephemeralSecretLength = 48

// ProvideTokenIssuer provides the access token issuer selected by
// TOKEN_FORMAT. PASETO keys live under the data directory; JWT uses the
// configured secret, or an ephemeral one outside production.
func ProvideTokenIssuer(i do.Injector) (auth.Issuer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	format, err := auth.ParseFormat(cfg.Auth.TokenFormat)
	if err != nil {
		return nil, err
	}

	switch format {
	case auth.FormatPaseto:
		key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
		if err != nil {
			return nil, fmt.Errorf("load token key: %w", err)
		}
		log.Info("PASETO token key loaded",
			"access_token_duration", cfg.Auth.AccessTokenDuration,
		)
		return auth.NewPasetoIssuer(key, cfg.Auth.AccessTokenDuration)

	default:
		secret := cfg.Auth.JWTSecret
		if secret == "" {
			if cfg.App.IsProduction() {
				return nil, fmt.Errorf("JWT_SECRET_KEY is required in production")
			}
			secret, err = id.Secret(ephemeralSecretLength)
			if err != nil {
				return nil, err
			}
			log.Warn("JWT_SECRET_KEY not set, using an ephemeral secret; tokens will not survive a restart")
		}
		log.Info("JWT token issuer configured",
			"access_token_duration", cfg.Auth.AccessTokenDuration,
		)
		return auth.NewJWTIssuer(secret, cfg.Auth.AccessTokenDuration)
	}
}
