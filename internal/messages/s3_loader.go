package messages

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectGetter is the subset of *s3.Client the loader uses.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for catalogue objects stored in AWS S3.
type s3Loader struct {
	client objectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based catalogue loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-messages-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 loader initialised")

	return &s3Loader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads the object with the given key. The key must include any prefix.
func (l *s3Loader) Load(ctx context.Context, key string) (Catalogue, error) {
	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	catalogue, err := decode(result.Body, key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode S3 object %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("keys", len(catalogue)).
		Msg("message catalogue loaded from S3")

	return catalogue, nil
}

// fallbackLoader tries S3 first, then the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries S3 first and falls back to
// the local file system. A nil s3Loader means local only.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load prepends the S3 prefix for the S3 attempt and uses name as-is locally.
func (l *fallbackLoader) Load(ctx context.Context, name string) (Catalogue, error) {
	if l.s3Loader != nil {
		key := l.s3Prefix + name
		catalogue, err := l.s3Loader.Load(ctx, key)
		if err == nil {
			return catalogue, nil
		}
		l.logger.Warn().
			Err(err).
			Str("s3_key", key).
			Msg("failed to load from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, name)
}
