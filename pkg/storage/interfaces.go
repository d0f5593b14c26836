package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned when a snapshot ID has no stored entry.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Storage is the snapshot persistence interface.
type Storage interface {
	// SaveSnapshot persists a snapshot.
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	// GetSnapshot retrieves a snapshot by ID.
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	// ListSnapshots returns listing info for all snapshots, newest first.
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	// LatestSnapshot returns the most recently created snapshot.
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
}

// Config holds storage backend configuration.
type Config struct {
	// Type selects the backend: "filesystem" or "s3".
	Type string

	// Filesystem config
	FilesystemRoot string

	// S3 config
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// DefaultConfig returns the default storage configuration.
func DefaultConfig() Config {
	return Config{
		Type:           "filesystem",
		FilesystemRoot: ".modscope/snapshots",
		S3Region:       "us-east-1",
	}
}

// NewStorage creates the backend selected by cfg.Type.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "filesystem":
		return NewFileSystemStorage(cfg.FilesystemRoot)
	case "s3":
		return NewS3Storage(cfg)
	}
	return nil, fmt.Errorf("invalid storage type: %s (must be filesystem or s3)", cfg.Type)
}
