package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/jrsteele09/go-coinbase-oauth/provider"
	"github.com/stretchr/testify/require"
)

func TestExchanger_Exchange(t *testing.T) {
	t.Run("posts authorization code grant", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			require.Equal(t, "the-code", r.PostForm.Get("code"))
			require.Equal(t, "client", r.PostForm.Get("client_id"))
			require.Equal(t, "secret", r.PostForm.Get("client_secret"))
			require.Equal(t, "http://localhost/oauth_callback", r.PostForm.Get("redirect_uri"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"AT","refresh_token":"RT","token_type":"bearer","expires_in":7200}`))
		}))
		defer srv.Close()

		ex := provider.NewExchanger(provider.ExchangerConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost/oauth_callback",
			Endpoints:    provider.Endpoints{TokenURL: srv.URL},
			HTTPClient:   srv.Client(),
		})

		tok, err := ex.Exchange(context.Background(), "the-code")
		require.NoError(t, err)
		require.Equal(t, "AT", tok.AccessToken)
		require.Equal(t, "RT", tok.RefreshToken)
		require.False(t, tok.Expiry.IsZero())
		require.Equal(t, 1, calls)
		require.Equal(t, srv.URL, ex.TokenURL())
	})

	t.Run("provider error is not retried", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code expired"}`))
		}))
		defer srv.Close()

		ex := provider.NewExchanger(provider.ExchangerConfig{
			ClientID:  "client",
			Endpoints: provider.Endpoints{TokenURL: srv.URL},
		})

		_, err := ex.Exchange(context.Background(), "stale")
		require.ErrorIs(t, err, errors.ErrTokenExchange)
		require.Contains(t, err.Error(), "invalid_grant")
		require.Equal(t, 1, calls)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		ex := provider.NewExchanger(provider.ExchangerConfig{Endpoints: provider.Endpoints{TokenURL: url}})
		_, err := ex.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, errors.ErrTokenExchange)
	})
}
