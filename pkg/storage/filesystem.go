package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSystemStorage implements Storage using one JSON file per snapshot
// under a root directory.
type FileSystemStorage struct {
	rootDir string
}

// NewFileSystemStorage creates a new filesystem-based snapshot store.
func NewFileSystemStorage(rootDir string) (*FileSystemStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("filesystem root is required")
	}
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSystemStorage{rootDir: rootDir}, nil
}

// SaveSnapshot implements Storage.SaveSnapshot.
func (s *FileSystemStorage) SaveSnapshot(_ context.Context, snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	path := s.path(snapshot.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// GetSnapshot implements Storage.GetSnapshot.
func (s *FileSystemStorage) GetSnapshot(_ context.Context, id string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// ListSnapshots implements Storage.ListSnapshots.
func (s *FileSystemStorage) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}
	infos := make([]SnapshotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		snapshot, err := s.GetSnapshot(ctx, id)
		if err != nil {
			return nil, err
		}
		infos = append(infos, snapshot.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// LatestSnapshot implements Storage.LatestSnapshot.
func (s *FileSystemStorage) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	infos, err := s.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrSnapshotNotFound
	}
	return s.GetSnapshot(ctx, infos[0].ID)
}

func (s *FileSystemStorage) path(id string) string {
	return filepath.Join(s.rootDir, id+".json")
}
