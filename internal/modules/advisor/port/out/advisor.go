package out

import (
	"context"

	"paymind/internal/modules/advisor/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Advise(ctx context.Context, manifest domain.Manifest, req domain.Request) ([]domain.Suggestion, error)
}
