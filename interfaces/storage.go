package interfaces

import "context"

type StorageService interface {
	Download(ctx context.Context, key string) ([]byte, error)
}
