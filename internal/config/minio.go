package config

import (
	"context"
	"encoding/json"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// NewMinIOClient connects to the attachment bucket, creating it on first use.
// Objects are served through a public-read bucket policy so attachment URLs
// can be handed straight to the frontend.
func NewMinIOClient(ctx context.Context, cfg *Config, logger zerolog.Logger) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", cfg.MinIOBucket).Msg("created attachment bucket")
	}

	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{"arn:aws:s3:::" + cfg.MinIOBucket + "/complaints/*"},
			},
		},
	}
	policyJSON, _ := json.Marshal(policy)
	if err := client.SetBucketPolicy(ctx, cfg.MinIOBucket, string(policyJSON)); err != nil {
		logger.Warn().Err(err).Str("bucket", cfg.MinIOBucket).Msg("failed to set bucket policy")
	}

	return client, nil
}
