package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewWithBaseURL("http://store.local/", time.Second)
	require.NoError(t, err)
	httpmock.ActivateNonDefault(c.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestNewWithBaseURL_RejectsGarbage(t *testing.T) {
	_, err := NewWithBaseURL("", time.Second)
	require.Error(t, err)

	_, err = NewWithBaseURL("not a url", time.Second)
	require.Error(t, err)
}

func TestDo_SendsQueryHeadersAndDecodes(t *testing.T) {
	c := newMockedClient(t)
	c.Headers["Authorization"] = "service"

	httpmock.RegisterResponder(http.MethodPost, "http://store.local/api/things",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "x", req.URL.Query().Get("q"))
			assert.Equal(t, "user", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return httpmock.NewStringResponse(http.StatusOK, `{"id":"abc"}`), nil
		})

	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "api/things",
		Query:   url.Values{"q": {"x"}},
		Headers: map[string]string{"Authorization": "user"},
		In:      map[string]string{"name": "n"},
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", out.ID)
}

func TestDo_Non2xxReturnsHTTPError(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, "http://store.local/missing",
		httpmock.NewStringResponder(http.StatusNotFound, ` {"message":"nope"} `))

	err := c.Do(context.Background(), Request{Path: "/missing"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, `{"message":"nope"}`, he.Body)
}

func TestDo_RelativePathWithoutBaseURL(t *testing.T) {
	c := New(0)
	err := c.Do(context.Background(), Request{Path: "/x"})
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}
