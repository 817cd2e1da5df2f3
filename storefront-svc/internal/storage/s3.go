package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used for product images.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3ImageStore struct {
	Client  S3API
	Bucket  string
	BaseURL string
}

func NewS3ImageStore(client S3API, bucket, baseURL string) *S3ImageStore {
	return &S3ImageStore{Client: client, Bucket: bucket, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *S3ImageStore) PublicURL(key string) string {
	return s.BaseURL + "/" + key
}

func (s *S3ImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.Bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *S3ImageStore) List(ctx context.Context, prefix string) ([]domain.ProductImage, error) {
	images := []domain.ProductImage{}
	var token *string
	for {
		out, err := s.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.Bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			images = append(images, domain.ProductImage{
				Key:       key,
				URL:       s.PublicURL(key),
				Size:      aws.ToInt64(obj.Size),
				UpdatedAt: aws.ToTime(obj.LastModified),
			})
		}

		if !aws.ToBool(out.IsTruncated) {
			return images, nil
		}
		token = out.NextContinuationToken
	}
}

func (s *S3ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
