package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

type configHistory struct {
	db *gorm.DB
}

func newConfigHistory(ds *datastore) *configHistory {
	return &configHistory{ds.db}
}

func (c *configHistory) Create(ctx context.Context, entry *model.ConfigurationHistory) error {
	if err := c.db.WithContext(ctx).Create(entry).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (c *configHistory) Get(ctx context.Context, id string) (*model.ConfigurationHistory, error) {
	var entry model.ConfigurationHistory
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrDatabase, "configuration history %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &entry, nil
}

func (c *configHistory) MarkApplied(ctx context.Context, id string) error {
	err := c.db.WithContext(ctx).Model(&model.ConfigurationHistory{}).
		Where("id = ?", id).Update("applied_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	if err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (c *configHistory) List(ctx context.Context, opt store.ConfigurationHistoryListOptions) ([]*model.ConfigurationHistory, int64, error) {
	query := c.db.WithContext(ctx).Model(&model.ConfigurationHistory{})
	if opt.PeerID != "" {
		query = query.Where("peer_id = ?", opt.PeerID)
	}
	if opt.ConfigType != "" {
		query = query.Where("config_type = ?", opt.ConfigType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}

	if opt.Limit > 0 {
		query = query.Offset(opt.Offset).Limit(opt.Limit)
	}

	var list []*model.ConfigurationHistory
	if err := query.Order("generated_at desc").Find(&list).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, total, nil
}
