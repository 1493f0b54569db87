package store

import "github.com/yourorg/sdkdoc/pkg/types"

type Store interface {
	SaveRender(service, operation string, body []byte) (*types.Render, error)
	// GetRender returns the given version, or the latest when version is 0.
	GetRender(service, operation string, version int) (*types.Render, error)
	ListRenders(service string) ([]types.Render, error)
	DeleteService(service string) error

	Close() error
}
