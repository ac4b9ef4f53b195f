package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"resume-match/internal/config"
)

// Archiver keeps a copy of every uploaded resume under batch/filename.
type Archiver interface {
	Put(ctx context.Context, batchID, filename string, data []byte) error
}

func New(ctx context.Context, cfg config.UploadConfig) (Archiver, error) {
	switch cfg.Archive {
	case config.ArchiveNone:
		return Nop{}, nil
	case config.ArchiveS3:
		return NewS3(ctx, cfg)
	default:
		return NewDisk(cfg.Dir)
	}
}

type Nop struct{}

func (Nop) Put(context.Context, string, string, []byte) error { return nil }

type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Put(ctx context.Context, batchID, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(d.dir, filepath.Base(batchID), filepath.Base(filename))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 targets AWS by default; setting S3Endpoint points it at any
// S3-compatible store (R2, MinIO) using path-style addressing.
func NewS3(ctx context.Context, cfg config.UploadConfig) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: cfg.S3Bucket}, nil
}

func ObjectKey(batchID, filename string) string {
	return path.Join("resumes", path.Base(batchID), path.Base(filename))
}

func (s *S3) Put(ctx context.Context, batchID, filename string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(ObjectKey(batchID, filename)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, ObjectKey(batchID, filename), err)
	}
	return nil
}
