package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// MockS3Client is a testify mock for Client.
// GetObject also accepts a func(*s3.GetObjectInput) (*s3.GetObjectOutput, error)
// as its first return value to compute responses per request.
type MockS3Client struct {
	mock.Mock
}

var _ Client = (*MockS3Client)(nil)

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if fn, ok := args.Get(0).(func(*s3.GetObjectInput) (*s3.GetObjectOutput, error)); ok {
		return fn(params)
	}
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

// serveRange answers ranged GETs from data the way S3 does.
func serveRange(data []byte) func(*s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	return func(in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		total := int64(len(data))
		if in.Range == nil {
			return &s3.GetObjectOutput{
				Body:          io.NopCloser(bytes.NewReader(data)),
				ContentLength: aws.Int64(total),
			}, nil
		}

		var start, end int64
		if _, err := fmt.Sscanf(*in.Range, "bytes=%d-%d", &start, &end); err != nil {
			return nil, err
		}
		if end >= total {
			end = total - 1
		}
		part := data[start : end+1]
		return &s3.GetObjectOutput{
			Body:          io.NopCloser(bytes.NewReader(part)),
			ContentLength: aws.Int64(int64(len(part))),
			ContentRange:  aws.String(fmt.Sprintf("bytes %d-%d/%d", start, end, total)),
		}, nil
	}
}
