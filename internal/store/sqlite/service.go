package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

type services struct {
	db *gorm.DB
}

func newServices(ds *datastore) *services {
	return &services{ds.db}
}

func (s *services) Create(ctx context.Context, svc *model.PublishedService) error {
	if err := s.db.WithContext(ctx).Create(svc).Error; err != nil {
		if isUniqueConstraintError(err) {
			return errors.WithCode(code.ErrServiceSharedIPConflict, err.Error())
		}
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (s *services) Get(ctx context.Context, id string) (*model.PublishedService, error) {
	var svc model.PublishedService
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrServiceNotFound, "published service %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &svc, nil
}

func (s *services) Update(ctx context.Context, svc *model.PublishedService) error {
	if err := s.db.WithContext(ctx).Save(svc).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (s *services) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PublishedService{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (s *services) List(ctx context.Context, opt store.PublishedServiceListOptions) ([]*model.PublishedService, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.PublishedService{})
	if opt.PeerID != "" {
		query = query.Where("peer_id = ?", opt.PeerID)
	}
	if opt.Protocol != "" {
		query = query.Where("protocol = ?", opt.Protocol)
	}
	if opt.IsActive != nil {
		query = query.Where("is_active = ?", *opt.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}

	if opt.Limit > 0 {
		query = query.Offset(opt.Offset).Limit(opt.Limit)
	}

	var list []*model.PublishedService
	if err := query.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, total, nil
}

func (s *services) ListByPeer(ctx context.Context, peerID string) ([]*model.PublishedService, error) {
	var list []*model.PublishedService
	err := s.db.WithContext(ctx).Where("peer_id = ?", peerID).Order("created_at asc").Find(&list).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, nil
}

func (s *services) ListByWAN(ctx context.Context, wanID string) ([]*model.PublishedService, error) {
	var list []*model.PublishedService
	err := s.db.WithContext(ctx).
		Joins("JOIN peers ON peers.id = published_services.peer_id").
		Where("peers.wan_id = ? AND published_services.is_active = ?", wanID, true).
		Find(&list).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, nil
}
