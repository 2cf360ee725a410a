package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

type subnets struct {
	db *gorm.DB
}

func newSubnets(ds *datastore) *subnets {
	return &subnets{ds.db}
}

func (s *subnets) Create(ctx context.Context, subnet *model.LocalSubnet) error {
	if err := s.db.WithContext(ctx).Create(subnet).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (s *subnets) Get(ctx context.Context, id string) (*model.LocalSubnet, error) {
	var subnet model.LocalSubnet
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&subnet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrSubnetNotFound, "local subnet %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &subnet, nil
}

func (s *subnets) Update(ctx context.Context, subnet *model.LocalSubnet) error {
	if err := s.db.WithContext(ctx).Save(subnet).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (s *subnets) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LocalSubnet{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (s *subnets) List(ctx context.Context, opt store.LocalSubnetListOptions) ([]*model.LocalSubnet, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.LocalSubnet{})
	if opt.PeerID != "" {
		query = query.Where("peer_id = ?", opt.PeerID)
	}
	if opt.IsRouted != nil {
		query = query.Where("is_routed = ?", *opt.IsRouted)
	}
	if opt.NATEnabled != nil {
		query = query.Where("nat_enabled = ?", *opt.NATEnabled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}

	if opt.Limit > 0 {
		query = query.Offset(opt.Offset).Limit(opt.Limit)
	}

	var list []*model.LocalSubnet
	if err := query.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, total, nil
}

func (s *subnets) ListByPeer(ctx context.Context, peerID string) ([]*model.LocalSubnet, error) {
	var list []*model.LocalSubnet
	err := s.db.WithContext(ctx).Where("peer_id = ?", peerID).Order("created_at asc").Find(&list).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, nil
}

// ListSiblings returns every subnet advertised by peers other than
// excludePeerID on wanID, joining through peers to scope by WAN.
func (s *subnets) ListSiblings(ctx context.Context, wanID, excludePeerID string) ([]*model.LocalSubnet, error) {
	var list []*model.LocalSubnet
	err := s.db.WithContext(ctx).
		Joins("JOIN peers ON peers.id = local_subnets.peer_id").
		Where("peers.wan_id = ? AND local_subnets.peer_id <> ?", wanID, excludePeerID).
		Find(&list).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, nil
}
