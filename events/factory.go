package events

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
)

// NewFromConfig selects the event store backend once at startup.
func NewFromConfig(ctx context.Context, cfg *config.EventStoreConfig) (Store, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("event store config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.EventStoreTypeLocal:
		return NewLocalStore(cfg.FilePath)
	case config.EventStoreTypeDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, errors.NewConfigurationError("load AWS configuration", err)
		}
		return NewDynamoDBStore(awsCfg, cfg.TableName)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported event store type: %s", cfg.Type), nil)
	}
}
