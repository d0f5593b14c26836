package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const snapshotPrefix = "snapshots/"

var s3Tracer = otel.Tracer("modscope/storage/s3")

// S3Storage implements Storage on top of an S3-compatible object store.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage creates an S3-backed snapshot store. With explicit access
// keys it uses static credentials (MinIO or AWS with configured keys),
// otherwise the default credential chain (IAM roles, env vars).
func NewS3Storage(cfg Config) (*S3Storage, error) {
	ctx := context.Background()

	var awsConfig aws.Config
	var err error
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		awsConfig, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKey,
				cfg.S3SecretKey,
				"",
			)),
		)
	} else {
		awsConfig, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		if cfg.S3UsePathStyle {
			o.UsePathStyle = true
		}
	})

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	return &S3Storage{client: client, bucket: cfg.S3Bucket}, nil
}

// SaveSnapshot implements Storage.SaveSnapshot.
func (s *S3Storage) SaveSnapshot(ctx context.Context, snapshot *Snapshot) error {
	ctx, span := s3Tracer.Start(ctx, "S3.SaveSnapshot",
		trace.WithAttributes(
			attribute.String("s3.bucket", s.bucket),
			attribute.String("snapshot.id", snapshot.ID),
		),
	)
	defer span.End()

	data, err := json.Marshal(snapshot)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal snapshot")
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(snapshot.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"created-at":   snapshot.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"module-count": fmt.Sprintf("%d", len(snapshot.Modules)),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload snapshot")
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}

// GetSnapshot implements Storage.GetSnapshot.
func (s *S3Storage) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	ctx, span := s3Tracer.Start(ctx, "S3.GetSnapshot",
		trace.WithAttributes(
			attribute.String("s3.bucket", s.bucket),
			attribute.String("snapshot.id", id),
		),
	)
	defer span.End()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrSnapshotNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch snapshot")
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// ListSnapshots implements Storage.ListSnapshots.
func (s *S3Storage) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	ctx, span := s3Tracer.Start(ctx, "S3.ListSnapshots",
		trace.WithAttributes(attribute.String("s3.bucket", s.bucket)),
	)
	defer span.End()

	var infos []SnapshotInfo
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(snapshotPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to list snapshots")
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			id := strings.TrimSuffix(strings.TrimPrefix(key, snapshotPrefix), ".json")
			if id == "" {
				continue
			}
			info := SnapshotInfo{ID: id}
			if object.LastModified != nil {
				info.CreatedAt = *object.LastModified
			}
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// LatestSnapshot implements Storage.LatestSnapshot.
func (s *S3Storage) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	infos, err := s.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrSnapshotNotFound
	}
	return s.GetSnapshot(ctx, infos[0].ID)
}

func (s *S3Storage) key(id string) string {
	return snapshotPrefix + id + ".json"
}
