package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rs/zerolog/log"
)

const (
	secretIDVar        = "AWS_SECRETS_MANAGER_SECRET_ID"
	secretRegionVar    = "AWS_SECRETS_MANAGER_REGION"
	secretOverwriteVar = "AWS_SECRETS_MANAGER_OVERWRITE"
)

// SecretGetter is the subset of the Secrets Manager client used here.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// LoadSecrets copies the key/value pairs of a JSON secret into the process
// environment. It is a no-op when no secret ID is configured.
func LoadSecrets(ctx context.Context) error {
	secretID := os.Getenv(secretIDVar)
	if secretID == "" {
		return nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region := os.Getenv(secretRegionVar); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	overwrite := strings.EqualFold(os.Getenv(secretOverwriteVar), "true")
	applied, err := ApplySecret(ctx, secretsmanager.NewFromConfig(cfg), secretID, overwrite, os.LookupEnv, os.Setenv)
	if err != nil {
		return err
	}
	log.Info().Str("secret", secretID).Int("applied", applied).Msg("Loaded environment from AWS Secrets Manager")
	return nil
}

// ApplySecret fetches secretID and sets each top-level key through setenv.
// Keys that already have a value are kept unless overwrite is set.
func ApplySecret(
	ctx context.Context,
	client SecretGetter,
	secretID string,
	overwrite bool,
	lookupEnv func(string) (string, bool),
	setenv func(string, string) error,
) (int, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return 0, fmt.Errorf("fetching secret %s: %w", secretID, err)
	}

	var payload string
	switch {
	case out.SecretString != nil:
		payload = *out.SecretString
	case len(out.SecretBinary) > 0:
		payload = string(out.SecretBinary)
	default:
		return 0, fmt.Errorf("secret %s has no payload", secretID)
	}

	var kv map[string]any
	if err := json.Unmarshal([]byte(payload), &kv); err != nil {
		return 0, fmt.Errorf("parsing secret %s as JSON: %w", secretID, err)
	}

	applied := 0
	for key, val := range kv {
		if current, ok := lookupEnv(key); ok && current != "" && !overwrite {
			continue
		}
		if err := setenv(key, fmt.Sprint(val)); err != nil {
			return applied, fmt.Errorf("setting env %s from secret: %w", key, err)
		}
		applied++
	}
	return applied, nil
}
