package events

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

// DynamoDBAPI is the slice of the DynamoDB client this store uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBStore writes one item per event, keyed by the record's unique id.
type DynamoDBStore struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBStore(awsConfig aws.Config, tableName string) (*DynamoDBStore, error) {
	if tableName == "" {
		return nil, errors.NewConfigurationError("dynamodb table name cannot be empty", nil)
	}

	return &DynamoDBStore{
		client: dynamodb.NewFromConfig(awsConfig),
		table:  tableName,
	}, nil
}

func (s *DynamoDBStore) Record(ctx context.Context, event *models.EventRecord) error {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return errors.NewEventStoreError("marshal event record", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return errors.NewEventStoreError("put event item", err)
	}
	return nil
}
