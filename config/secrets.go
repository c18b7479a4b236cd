package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the slice of the SSM client used to read secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMClient builds a Parameter Store client from the default AWS
// credential chain. An empty region defers to AWS_REGION.
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awscfg.LoadOptions) error
	if region != "" {
		opts = append(opts, awscfg.WithRegion(region))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ResolveJWTSecret fills JWTSecret from Parameter Store when
// JWTSecretSSMParam is set and no inline secret was given, then validates it.
func (c *AppConfig) ResolveJWTSecret(ctx context.Context, client ParameterGetter) error {
	if c.JWTSecret == "" && c.JWTSecretSSMParam != "" {
		if client == nil {
			return fmt.Errorf("no SSM client to resolve %s", c.JWTSecretSSMParam)
		}
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(c.JWTSecretSSMParam),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("read JWT secret from SSM: %w", err)
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			return fmt.Errorf("SSM parameter %s has no value", c.JWTSecretSSMParam)
		}
		c.JWTSecret = strings.TrimSpace(aws.ToString(out.Parameter.Value))
	}
	return c.ValidateSecret()
}
