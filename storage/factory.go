package storage

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
)

// NewFromConfig selects the data store backend once at startup.
func NewFromConfig(ctx context.Context, cfg *config.DataStoreConfig) (ObjectStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("data store config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.DataStoreTypeLocal:
		return NewLocalStore(cfg.Directory)
	case config.DataStoreTypeS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, errors.NewConfigurationError("load AWS configuration", err)
		}
		return NewS3Store(awsCfg, cfg.Bucket, cfg.Folder)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported data store type: %s", cfg.Type), nil)
	}
}
