package adapt

import (
	"context"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"io"
)

type S3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func S3GetRaw(ctx context.Context, s3c S3Getter, bucket, key string) ([]byte, error) {
	var b []byte
	return b, S3Get(ctx, s3c, bucket, key, readRaw(&b))
}

func S3Get(ctx context.Context, s3c S3Getter, bucket, key string, fn func(r io.Reader) error) error {
	resp, err := s3c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return err
	}

	defer resp.Body.Close()
	return fn(resp.Body)
}

func readRaw(b *[]byte) func(r io.Reader) error {
	return func(r io.Reader) error {
		var err error
		*b, err = io.ReadAll(r)
		return err
	}
}
