package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

type peers struct {
	db *gorm.DB
}

func newPeers(ds *datastore) *peers {
	return &peers{ds.db}
}

func (p *peers) Create(ctx context.Context, peer *model.Peer) error {
	if err := p.db.WithContext(ctx).Create(peer).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (p *peers) Get(ctx context.Context, id string) (*model.Peer, error) {
	var peer model.Peer
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&peer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrPeerNotFound, "peer %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &peer, nil
}

func (p *peers) Update(ctx context.Context, peer *model.Peer) error {
	if err := p.db.WithContext(ctx).Save(peer).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (p *peers) Delete(ctx context.Context, id string) error {
	err := p.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Peer{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (p *peers) List(ctx context.Context, opt store.PeerListOptions) ([]*model.Peer, int64, error) {
	query := p.db.WithContext(ctx).Model(&model.Peer{})
	if opt.WANID != "" {
		query = query.Where("wan_id = ?", opt.WANID)
	}
	if opt.Type != "" {
		query = query.Where("type = ?", opt.Type)
	}
	if opt.APIStatus != "" {
		query = query.Where("api_status = ?", opt.APIStatus)
	}
	if opt.IsOnline != nil {
		query = query.Where("is_online = ?", *opt.IsOnline)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}

	if opt.Limit > 0 {
		query = query.Offset(opt.Offset).Limit(opt.Limit)
	}

	var list []*model.Peer
	if err := query.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, total, nil
}

func (p *peers) ListByWAN(ctx context.Context, wanID string) ([]*model.Peer, error) {
	var list []*model.Peer
	err := p.db.WithContext(ctx).Where("wan_id = ?", wanID).Order("created_at asc").Find(&list).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, nil
}
