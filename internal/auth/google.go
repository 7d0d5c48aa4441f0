// AngelaMos | 2026
// google.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/storefront/internal/config"
	"github.com/carterperez-dev/storefront/internal/core"
)

const googleKeysWait = 5 * time.Second

var ErrGoogleDisabled = errors.New("google sign-in disabled")

// GoogleIdentity is what a verified Google ID token vouches for.
type GoogleIdentity struct {
	Email string
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

type keySource func(ctx context.Context) (jwk.Set, error)

// GoogleVerifier checks Google ID tokens against Google's published keys.
// The key set is kept by a jwk.Cache that refreshes in the background.
type GoogleVerifier struct {
	clientID string
	issuer   string
	keys     keySource
	cache    *jwk.Cache
}

// NewGoogleVerifier registers the JWKS URL without waiting for the first
// fetch, so startup does not depend on Google being reachable.
func NewGoogleVerifier(
	ctx context.Context,
	cfg config.AuthConfig,
) (*GoogleVerifier, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("create jwks cache: %w", err)
	}

	if err := cache.Register(
		ctx,
		cfg.GoogleJWKSURL,
		jwk.WithMinInterval(cfg.GoogleJWKSRefresh),
		jwk.WithWaitReady(false),
	); err != nil {
		_ = cache.Shutdown(ctx) //nolint:errcheck // already failing
		return nil, fmt.Errorf("register %s: %w", cfg.GoogleJWKSURL, err)
	}

	return &GoogleVerifier{
		clientID: cfg.GoogleClientID,
		issuer:   cfg.GoogleIssuer,
		keys:     cachedKeys(cache, cfg.GoogleJWKSURL),
		cache:    cache,
	}, nil
}

func cachedKeys(cache *jwk.Cache, url string) keySource {
	return func(ctx context.Context) (jwk.Set, error) {
		waitCtx, cancel := context.WithTimeout(ctx, googleKeysWait)
		defer cancel()

		if !cache.Ready(waitCtx, url) {
			return nil, fmt.Errorf("fetch %s: keys not available", url)
		}
		return cache.Lookup(ctx, url)
	}
}

func (v *GoogleVerifier) Verify(
	ctx context.Context,
	credential string,
) (*GoogleIdentity, error) {
	set, err := v.keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("load google keys: %w", err)
	}

	opts := []jwt.ParseOption{
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithAudience(v.clientID),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse([]byte(credential), opts...)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify google token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify google token: %w", core.ErrTokenInvalid)
	}

	var email string
	if err := token.Get("email", &email); err != nil || email == "" {
		return nil, fmt.Errorf(
			"verify google token: missing email: %w",
			core.ErrTokenInvalid,
		)
	}

	return &GoogleIdentity{Email: email}, nil
}

// Close stops the background refresh.
func (v *GoogleVerifier) Close(ctx context.Context) error {
	if v.cache == nil {
		return nil
	}
	return v.cache.Shutdown(ctx)
}
