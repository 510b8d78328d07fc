package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/jrsteele09/go-coinbase-oauth/internal/config"
	apperrors "github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/stretchr/testify/require"
)

func requiredVars() map[string]string {
	return map[string]string{
		"CLIENT_ID":      "client",
		"CLIENT_SECRET":  "client-secret",
		"STATE_SECRET":   "state-secret",
		"SESSION_SECRET": "session-secret",
	}
}

func TestFromMap_Defaults(t *testing.T) {
	c, err := config.FromMap(requiredVars())
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:8080", c.GetBaseURL())
	require.True(t, c.IsSandbox())
	require.Equal(t, []string{"wallet:user:email", "wallet:user:read"}, c.GetScopes())
	require.Equal(t, config.SandboxAuthorizeURL, c.GetAuthorizeURL())
	require.Equal(t, config.SandboxTokenURL, c.GetTokenURL())
	require.Equal(t, config.SandboxAPIBaseURL, c.GetAPIBaseURL())
	require.Equal(t, 60*time.Second, c.GetStateMaxAge())
	require.Equal(t, 30*time.Minute, c.GetMaxSessionAge())
	require.Equal(t, config.SessionStoreMemory, c.GetSessionStore())
	require.Equal(t, []byte("state-secret"), c.GetStateSecret())
	require.Equal(t, []byte("session-secret"), c.GetSessionSecret())
}

func TestFromMap_Overrides(t *testing.T) {
	vars := requiredVars()
	vars["PORT"] = ":9000"
	vars["SANDBOX"] = "false"
	vars["HOST_BASE_URL"] = "https://demo.example.com/"
	vars["OAUTH_SCOPES"] = "a,b c"
	vars["OAUTH_TOKEN_URL"] = "http://stub/token"
	vars["STATE_MAX_AGE"] = "2m"

	c, err := config.FromMap(vars)
	require.NoError(t, err)

	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, "https://demo.example.com", c.GetBaseURL())
	require.False(t, c.IsSandbox())
	require.Equal(t, []string{"a", "b c"}, c.GetScopes())
	require.Equal(t, config.ProductionAuthorizeURL, c.GetAuthorizeURL())
	require.Equal(t, "http://stub/token", c.GetTokenURL())
	require.Equal(t, config.ProductionAPIBaseURL, c.GetAPIBaseURL())
	require.Equal(t, 2*time.Minute, c.GetStateMaxAge())
}

func TestFromMap_Invalid(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		vars := requiredVars()
		delete(vars, "STATE_SECRET")
		_, err := config.FromMap(vars)
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
		require.Contains(t, err.Error(), "STATE_SECRET")
	})

	t.Run("redis without url", func(t *testing.T) {
		vars := requiredVars()
		vars["SESSION_STORE"] = "redis"
		_, err := config.FromMap(vars)
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("unknown store", func(t *testing.T) {
		vars := requiredVars()
		vars["SESSION_STORE"] = "disk"
		_, err := config.FromMap(vars)
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("bad duration", func(t *testing.T) {
		vars := requiredVars()
		vars["STATE_MAX_AGE"] = "soon"
		_, err := config.FromMap(vars)
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})
}

type fakeSecrets struct {
	out *secretsmanager.GetSecretValueOutput
	err error
}

func (f fakeSecrets) GetSecretValue(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return f.out, f.err
}

func TestApplySecret(t *testing.T) {
	ctx := context.Background()

	newEnv := func(initial map[string]string) (map[string]string, func(string) (string, bool), func(string, string) error) {
		env := map[string]string{}
		for k, v := range initial {
			env[k] = v
		}
		lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
		set := func(k, v string) error { env[k] = v; return nil }
		return env, lookup, set
	}

	secret := fakeSecrets{out: &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"CLIENT_SECRET":"from-aws","STATE_SECRET":"s"}`),
	}}

	t.Run("keeps existing values", func(t *testing.T) {
		env, lookup, set := newEnv(map[string]string{"CLIENT_SECRET": "local"})
		n, err := config.ApplySecret(ctx, secret, "id", false, lookup, set)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		require.Equal(t, "local", env["CLIENT_SECRET"])
		require.Equal(t, "s", env["STATE_SECRET"])
	})

	t.Run("overwrite", func(t *testing.T) {
		env, lookup, set := newEnv(map[string]string{"CLIENT_SECRET": "local"})
		n, err := config.ApplySecret(ctx, secret, "id", true, lookup, set)
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, "from-aws", env["CLIENT_SECRET"])
	})

	t.Run("binary payload", func(t *testing.T) {
		env, lookup, set := newEnv(nil)
		bin := fakeSecrets{out: &secretsmanager.GetSecretValueOutput{SecretBinary: []byte(`{"PORT":9090}`)}}
		_, err := config.ApplySecret(ctx, bin, "id", false, lookup, set)
		require.NoError(t, err)
		require.Equal(t, "9090", env["PORT"])
	})

	t.Run("not json", func(t *testing.T) {
		_, lookup, set := newEnv(nil)
		bad := fakeSecrets{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("plain")}}
		_, err := config.ApplySecret(ctx, bad, "id", false, lookup, set)
		require.Error(t, err)
	})

	t.Run("fetch error", func(t *testing.T) {
		_, lookup, set := newEnv(nil)
		_, err := config.ApplySecret(ctx, fakeSecrets{err: errors.New("denied")}, "id", false, lookup, set)
		require.ErrorContains(t, err, "denied")
	})

	t.Run("empty payload", func(t *testing.T) {
		_, lookup, set := newEnv(nil)
		_, err := config.ApplySecret(ctx, fakeSecrets{out: &secretsmanager.GetSecretValueOutput{}}, "id", false, lookup, set)
		require.ErrorContains(t, err, "no payload")
	})
}
