package notify

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"custopro-api/internal/config"
)

// newSESClient builds an SES v2 client from static credentials, or nil when
// none are configured.
func newSESClient(cfg config.EmailConfig) *sesv2.Client {
	if cfg.SESAccessKey == "" || cfg.SESSecretKey == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SESRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKey, cfg.SESSecretKey, ""),
		),
	)
	if err != nil {
		log.Printf("Warning: failed to initialize AWS config for SES: %v", err)
		return nil
	}

	return sesv2.NewFromConfig(awsCfg)
}
