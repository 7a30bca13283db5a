package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kostiantyn-povnych/weather-service/errors"
)

// S3API is the slice of the S3 client this store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes objects under a folder prefix in an S3 bucket.
type S3Store struct {
	client S3API
	bucket string
	folder string
}

func NewS3Store(awsConfig aws.Config, bucket, folder string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.NewConfigurationError("s3 bucket name cannot be empty", nil)
	}

	return &S3Store{
		client: s3.NewFromConfig(awsConfig),
		bucket: bucket,
		folder: folder,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, objectName string, data []byte) (string, error) {
	key := path.Join(s.folder, objectName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", errors.NewDataStoreError("put object", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}
