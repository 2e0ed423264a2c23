package loading

import (
	"context"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Source produces the raw transactions table
type Source interface {
	// Name identifies the source in logs and error messages
	Name() string
	// Read returns the header and every row of the source
	Read(ctx context.Context) (*domain.Table, error)
	// Fingerprint summarizes the current content of the source so a change
	// after load can be detected
	Fingerprint(ctx context.Context) (string, error)
}
