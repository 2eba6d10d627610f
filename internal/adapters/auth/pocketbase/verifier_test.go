package pocketbase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"household-illness-tracker/internal/platform/httpclient"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refreshURL = "http://store.local/api/collections/users/auth-refresh"

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	c, err := httpclient.NewWithBaseURL("http://store.local", time.Second)
	require.NoError(t, err)
	httpmock.ActivateNonDefault(c.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewVerifier(c, Config{})
}

func TestVerifier_ValidTokenIsCached(t *testing.T) {
	v := newTestVerifier(t)

	httpmock.RegisterResponder(http.MethodPost, refreshURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "tok-1", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(200, `{"token":"tok-2","record":{"id":"u1","email":"a@b.c"}}`), nil
		})

	claims, err := v.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)

	_, err = v.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestVerifier_Rejected(t *testing.T) {
	v := newTestVerifier(t)
	httpmock.RegisterResponder(http.MethodPost, refreshURL,
		httpmock.NewStringResponder(401, `{"message":"nope"}`))

	_, err := v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestVerifier_UpstreamFailure(t *testing.T) {
	v := newTestVerifier(t)
	httpmock.RegisterResponder(http.MethodPost, refreshURL,
		httpmock.NewStringResponder(500, `boom`))

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUpstream)
}
