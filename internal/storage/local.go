// Package storage is the blob storage collaborator. The core only ever
// sees the reference path it returns; file bytes are never inspected.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Logical buckets for uploaded media
const (
	BucketImages = "images"
	BucketVideos = "videos"
)

// LocalStorage writes uploads under a root directory with uuid-keyed
// filenames and returns stable /uploads reference paths.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates the bucket directories under root
func NewLocalStorage(root string) (*LocalStorage, error) {
	for _, bucket := range []string{BucketImages, BucketVideos} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("create bucket dir %s: %w", bucket, err)
		}
	}
	return &LocalStorage{root: root}, nil
}

// Root returns the directory uploads are written under
func (s *LocalStorage) Root() string {
	return s.root
}

// Save streams the upload into the bucket under a fresh uuid filename,
// keeping the original extension, and returns the reference path.
func (s *LocalStorage) Save(bucket, originalName string, r io.Reader) (string, error) {
	if bucket != BucketImages && bucket != BucketVideos {
		return "", fmt.Errorf("unknown bucket %q", bucket)
	}
	name := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(s.root, bucket, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + bucket + "/" + name, nil
}

// BucketForPostType picks the bucket by post type: videos for video posts,
// images for everything else.
func BucketForPostType(postType string) string {
	if postType == "video" {
		return BucketVideos
	}
	return BucketImages
}
