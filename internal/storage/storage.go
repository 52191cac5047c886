package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chaitali929/coremodeling/internal/logger"
)

// Storage is the object store adapter. Save stores bytes under key, GetURL returns the durable public URL.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string) (string, error)
}

type Config struct {
	Type        string // local, s3, cloudflare_r2, supabase
	BasePath    string // local
	BaseURL     string // public URL base
	Bucket      string
	Region      string
	AccessKey   string
	SecretKey   string
	Endpoint    string // R2 or custom S3
	SupabaseURL string
	SupabaseKey string
	Timeout     time.Duration // per call, 0 disables
}

func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	var (
		s   Storage
		err error
	)
	switch cfg.Type {
	case "local":
		s, err = NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		s, err = NewS3Storage(ctx, cfg)
	case "supabase":
		s, err = NewSupabaseStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	return WithTimeout(s, cfg.Timeout), nil
}

// WithTimeout bounds every Save and Delete call by d.
func WithTimeout(s Storage, d time.Duration) Storage {
	if d <= 0 {
		return s
	}
	return &timeoutStorage{Storage: s, timeout: d}
}

type timeoutStorage struct {
	Storage
	timeout time.Duration
}

func (t *timeoutStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- t.Storage.Save(ctx, key, reader, contentType)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		go t.discardLate(key, done)
		return fmt.Errorf("save %s: %w", key, ctx.Err())
	}
}

// discardLate removes an object whose save finished after the caller gave up on it.
func (t *timeoutStorage) discardLate(key string, done <-chan error) {
	if err := <-done; err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	if err := t.Storage.Delete(ctx, key); err != nil {
		logger.Warn("Orphaned object after timed out save", "key", key, "error", err)
		return
	}
	logger.Debug("Deleted object saved after timeout", "key", key)
}

func (t *timeoutStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Storage.Delete(ctx, key)
}
