package store

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// WANStore defines storage operations for WAN overlay networks.
type WANStore interface {
	Create(ctx context.Context, wan *model.WAN) error
	Get(ctx context.Context, id string) (*model.WAN, error)
	GetByName(ctx context.Context, name string) (*model.WAN, error)
	Update(ctx context.Context, wan *model.WAN) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opt WANListOptions) ([]*model.WAN, int64, error)
}

// WANListOptions defines list filters and pagination for WANs.
type WANListOptions struct {
	Name         string
	TopologyType string

	Offset int
	Limit  int
}
