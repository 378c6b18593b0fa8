package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/mandelview/internal/fractal"
)

const (
	metadataFile = "metadata.json"
	frameFile    = "frame.png"
)

var ErrNotFound = errors.New("storage: snapshot not found")

// Store keeps captured frames, one directory per snapshot.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type SnapshotMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	View      fractal.View       `json:"view"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Palette   string             `json:"palette"`
	ElapsedMs float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes the frame as PNG next to its metadata and returns the new id.
func (s *Store) Save(meta SnapshotMetadata, frame *image.RGBA) (string, error) {
	b := frame.Bounds()
	meta.Width, meta.Height = b.Dx(), b.Dy()
	meta.Timestamp = s.now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Palette, meta.Timestamp.UnixNano())

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := writePNG(filepath.Join(dir, frameFile), frame); err != nil {
		return "", fmt.Errorf("write frame: %w", err)
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", id, err)
	}
	return &meta, nil
}

// LoadFrame decodes the captured PNG of a snapshot.
func (s *Store) LoadFrame(id string) (image.Image, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, frameFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
