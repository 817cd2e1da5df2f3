package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campus-storefront/storefront-svc/internal/mocks"
	"campus-storefront/storefront-svc/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestS3ImageStore_Upload(t *testing.T) {
	client := mocks.NewS3API(t)
	store := storage.NewS3ImageStore(client, "menu", "https://cdn.example.com/menu/")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "menu" &&
			aws.ToString(in.Key) == "products/producto_3/1_bolon.png" &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	url, err := store.Upload(context.Background(), "products/producto_3/1_bolon.png", "image/png", strings.NewReader("png"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/menu/products/producto_3/1_bolon.png", url)
}

func TestS3ImageStore_UploadFailure(t *testing.T) {
	client := mocks.NewS3API(t)
	store := storage.NewS3ImageStore(client, "menu", "https://cdn.example.com/menu")

	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

	_, err := store.Upload(context.Background(), "k", "image/png", strings.NewReader("png"))
	assert.ErrorContains(t, err, "failed to upload to S3")
}

func TestS3ImageStore_ListPaginates(t *testing.T) {
	client := mocks.NewS3API(t)
	store := storage.NewS3ImageStore(client, "menu", "https://cdn.example.com/menu")
	modified := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("products/producto_3/a.png"), Size: aws.Int64(10), LastModified: aws.Time(modified)},
		},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("page-2"),
	}, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "page-2"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("products/producto_3/b.png"), Size: aws.Int64(20)},
		},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	images, err := store.List(context.Background(), "products/producto_3/")

	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "https://cdn.example.com/menu/products/producto_3/a.png", images[0].URL)
	assert.Equal(t, int64(10), images[0].Size)
	assert.Equal(t, modified, images[0].UpdatedAt)
	assert.Equal(t, "products/producto_3/b.png", images[1].Key)
}

func TestS3ImageStore_Delete(t *testing.T) {
	client := mocks.NewS3API(t)
	store := storage.NewS3ImageStore(client, "menu", "https://cdn.example.com/menu")

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "products/producto_3/a.png"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	assert.NoError(t, store.Delete(context.Background(), "products/producto_3/a.png"))

	// an empty key is a no-op
	assert.NoError(t, store.Delete(context.Background(), ""))
	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}
