package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	clientOnce sync.Once
	client     *s3.Client
	clientErr  error
)

func getClient(ctx context.Context) (*s3.Client, error) {
	clientOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			clientErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		client = s3.NewFromConfig(cfg)
	})
	return client, clientErr
}

// WriteFile stores a blob (attestation signatures) under the given key.
func WriteFile(bucket string, key string, ctx context.Context, data []byte, contentType string) error {
	c, err := getClient(ctx)
	if err != nil {
		return err
	}

	_, err = c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s to bucket %s: %w", key, bucket, err)
	}
	return nil
}

// ReadFile streams an object into outStream.
func ReadFile(bucket string, key string, ctx context.Context, outStream io.Writer) error {
	c, err := getClient(ctx)
	if err != nil {
		return err
	}

	resp, err := c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(outStream, resp.Body); err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, bucket, err)
	}
	return nil
}
