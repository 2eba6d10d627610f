package pocketbase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"household-illness-tracker/internal/platform/httpclient"
	"household-illness-tracker/internal/ports/auth"

	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrUnauthorized = errors.New("pocketbase unauthorized")
	ErrUpstream     = errors.New("pocketbase upstream error")
)

// DefaultCollection es la colección auth del record store.
const DefaultCollection = "users"

type Config struct {
	// Collection auth contra la que se refresca el token. Vacío = "users".
	Collection string
	// TTL de claims ya verificados. 0 = 1 minuto.
	TTL time.Duration
}

// Verifier implementa auth.AuthVerifier usando auth-refresh del record store:
// si el store acepta el token, el usuario es válido.
type Verifier struct {
	http       *httpclient.Client
	collection string
	seen       *gocache.Cache
}

func NewVerifier(c *httpclient.Client, cfg Config) *Verifier {
	col := strings.TrimSpace(cfg.Collection)
	if col == "" {
		col = DefaultCollection
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Verifier{
		http:       c,
		collection: col,
		seen:       gocache.New(ttl, 2*ttl),
	}
}

type refreshResponse struct {
	Token  string `json:"token"`
	Record struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"record"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	if c, ok := v.seen.Get(token); ok {
		return c.(auth.Claims), nil
	}

	var out refreshResponse
	err := v.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/api/collections/" + v.collection + "/auth-refresh",
		Headers: map[string]string{"Authorization": token},
		Out:     &out,
	})
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	claims := auth.Claims{
		UserID: strings.TrimSpace(out.Record.ID),
		Email:  strings.TrimSpace(out.Record.Email),
	}
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("pocketbase response missing record id")
	}

	v.seen.SetDefault(token, claims)
	return claims, nil
}
