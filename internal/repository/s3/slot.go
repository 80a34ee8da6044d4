package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"dictionary/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ObjectClient is the subset of *s3.Client used by SlotStore
type ObjectClient interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SlotStore implements repository.SlotStorage with one object per key
type SlotStore struct {
	client ObjectClient
	bucket string
	prefix string
}

// NewSlotStore creates a store writing to s3://bucket/prefix<key>
func NewSlotStore(client ObjectClient, bucket, prefix string) *SlotStore {
	return &SlotStore{client: client, bucket: bucket, prefix: prefix}
}

// Get returns the object stored under key
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if isNotFound(err) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot %s: %w", key, err)
	}
	defer object.Body.Close()

	b, err := io.ReadAll(object.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return b, nil
}

// Set overwrites the object stored under key
func (s *SlotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to store slot %s: %w", key, err)
	}
	return nil
}

func (s *SlotStore) objectKey(key string) string {
	return s.prefix + key
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
