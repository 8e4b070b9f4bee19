package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage hands out pre-signed upload URLs. The real implementation
// talks to S3-compatible storage; the API only depends on this interface.
type ObjectStorage interface {
	PresignPut(purpose string, tenantID uuid.UUID, filename, contentType string) (url string, key string, err error)
}

// LocalObjectStorage fabricates deterministic keys and URLs for
// development and tests.
type LocalObjectStorage struct {
	BaseURL string
}

func NewLocalObjectStorage(baseURL string) *LocalObjectStorage {
	return &LocalObjectStorage{BaseURL: baseURL}
}

func (s *LocalObjectStorage) PresignPut(purpose string, tenantID uuid.UUID, filename, contentType string) (string, string, error) {
	key := fmt.Sprintf("%s/%s/%d_%s", tenantID, purpose, time.Now().UnixNano(), filename)
	return s.BaseURL + "/upload/" + key, key, nil
}
