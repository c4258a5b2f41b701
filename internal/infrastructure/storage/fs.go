package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"svw.info/forestfill/internal/domain"
)

// FS persists terrain snapshots and fill reports as JSON files under a base
// directory: snapshots/<id>.json and reports/<snapshot id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) snapshotPath(id string) string {
	return filepath.Join(s.dir, "snapshots", strings.TrimSpace(id)+".json")
}

func (s *FS) reportPath(id string) string {
	return filepath.Join(s.dir, "reports", strings.TrimSpace(id)+".json")
}

func (s *FS) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil || strings.TrimSpace(snap.ID) == "" {
		return errors.New("invalid snapshot: missing ID")
	}
	if len(snap.Tiles) != snap.Width*snap.Height {
		return fmt.Errorf("invalid snapshot %q: %d tiles for %dx%d grid",
			snap.ID, len(snap.Tiles), snap.Width, snap.Height)
	}
	return s.write(s.snapshotPath(snap.ID), snap)
}

func (s *FS) LoadSnapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		return nil, err
	}
	var out domain.Snapshot
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", id, err)
	}
	if len(out.Tiles) != out.Width*out.Height {
		return nil, fmt.Errorf("corrupt snapshot %q: %d tiles for %dx%d grid",
			id, len(out.Tiles), out.Width, out.Height)
	}
	if out.ID == "" {
		out.ID = id
	}
	return &out, nil
}

func (s *FS) ListSnapshots(ctx context.Context) ([]domain.SnapshotMeta, error) {
	ents, err := os.ReadDir(filepath.Join(s.dir, "snapshots"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.SnapshotMeta
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, "snapshots", e.Name()))
		if err != nil {
			continue
		}
		var snap domain.Snapshot
		if err := sonic.Unmarshal(data, &snap); err != nil || snap.ID == "" {
			continue
		}
		out = append(out, domain.SnapshotMeta{
			ID:        snap.ID,
			Name:      snap.Name,
			Width:     snap.Width,
			Height:    snap.Height,
			CreatedAt: snap.CreatedAt,
		})
	}
	return out, nil
}

func (s *FS) SaveReport(ctx context.Context, r *domain.Report) error {
	if r == nil || strings.TrimSpace(r.SnapshotID) == "" {
		return errors.New("invalid report: missing snapshot ID")
	}
	return s.write(s.reportPath(r.SnapshotID), r)
}

func (s *FS) write(target string, v any) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
