package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

type wans struct {
	db *gorm.DB
}

func newWANs(ds *datastore) *wans {
	return &wans{ds.db}
}

func (w *wans) Create(ctx context.Context, wan *model.WAN) error {
	if err := w.db.WithContext(ctx).Create(wan).Error; err != nil {
		if isUniqueConstraintError(err) {
			return errors.WithCode(code.ErrWANNameAlreadyExists, err.Error())
		}
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (w *wans) Get(ctx context.Context, id string) (*model.WAN, error) {
	var wan model.WAN
	err := w.db.WithContext(ctx).Where("id = ?", id).First(&wan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrWANNotFound, "wan %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &wan, nil
}

func (w *wans) GetByName(ctx context.Context, name string) (*model.WAN, error) {
	var wan model.WAN
	err := w.db.WithContext(ctx).Where("name = ?", name).First(&wan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrWANNotFound, "wan %q not found", name)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &wan, nil
}

func (w *wans) Update(ctx context.Context, wan *model.WAN) error {
	if err := w.db.WithContext(ctx).Save(wan).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (w *wans) Delete(ctx context.Context, id string) error {
	err := w.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WAN{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (w *wans) List(ctx context.Context, opt store.WANListOptions) ([]*model.WAN, int64, error) {
	query := w.db.WithContext(ctx).Model(&model.WAN{})
	if opt.Name != "" {
		query = query.Where("name LIKE ?", "%"+opt.Name+"%")
	}
	if opt.TopologyType != "" {
		query = query.Where("topology_type = ?", opt.TopologyType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}

	if opt.Limit > 0 {
		query = query.Offset(opt.Offset).Limit(opt.Limit)
	}

	var wans []*model.WAN
	if err := query.Order("created_at desc").Find(&wans).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return wans, total, nil
}
