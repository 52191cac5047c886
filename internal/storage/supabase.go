package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	supa "github.com/supabase-community/storage-go"
)

type supabaseAPI interface {
	UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...supa.FileOptions) (supa.FileUploadResponse, error)
	RemoveFile(bucketID string, paths []string) ([]supa.FileUploadResponse, error)
}

// SupabaseStorage stores objects in a public Supabase Storage bucket.
type SupabaseStorage struct {
	client  supabaseAPI
	bucket  string
	baseURL string
}

func NewSupabaseStorage(cfg Config) (*SupabaseStorage, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required for supabase storage")
	}

	baseURL := strings.TrimSuffix(cfg.SupabaseURL, "/")
	return &SupabaseStorage{
		client:  supa.NewClient(baseURL+"/storage/v1", cfg.SupabaseKey, nil),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Save ignores ctx cancellation: the client has no context support. WithTimeout still bounds the caller.
func (s *SupabaseStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, key, reader, supa.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (s *SupabaseStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SupabaseStorage) GetURL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key), nil
}
