package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

type jobs struct {
	db *gorm.DB
}

func newJobs(ds *datastore) *jobs {
	return &jobs{ds.db}
}

func (j *jobs) Create(ctx context.Context, job *model.DeploymentJob) error {
	if err := j.db.WithContext(ctx).Create(job).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (j *jobs) Get(ctx context.Context, id string) (*model.DeploymentJob, error) {
	var job model.DeploymentJob
	err := j.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrJobNotFound, "deployment job %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &job, nil
}

func (j *jobs) Update(ctx context.Context, job *model.DeploymentJob) error {
	if err := j.db.WithContext(ctx).Save(job).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (j *jobs) Delete(ctx context.Context, id string) error {
	if err := j.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DeploymentJob{}).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (j *jobs) List(ctx context.Context, opt store.DeploymentJobListOptions) ([]*model.DeploymentJob, int64, error) {
	query := j.db.WithContext(ctx).Model(&model.DeploymentJob{})
	if opt.PeerID != "" {
		query = query.Where("peer_id = ?", opt.PeerID)
	}
	if opt.JobType != "" {
		query = query.Where("job_type = ?", opt.JobType)
	}
	if opt.Status != "" {
		query = query.Where("status = ?", opt.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}

	if opt.Limit > 0 {
		query = query.Offset(opt.Offset).Limit(opt.Limit)
	}

	var list []*model.DeploymentJob
	if err := query.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, 0, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, total, nil
}

func (j *jobs) LatestForPeer(ctx context.Context, peerID string) (*model.DeploymentJob, error) {
	var job model.DeploymentJob
	err := j.db.WithContext(ctx).Where("peer_id = ?", peerID).Order("created_at desc").First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return &job, nil
}

func (j *jobs) AppendApiCallLog(ctx context.Context, log *model.ApiCallLog) error {
	if err := j.db.WithContext(ctx).Create(log).Error; err != nil {
		return errors.WithCode(code.ErrDatabase, err.Error())
	}
	return nil
}

func (j *jobs) ListApiCallLogs(ctx context.Context, jobID string) ([]*model.ApiCallLog, error) {
	var list []*model.ApiCallLog
	err := j.db.WithContext(ctx).Where("job_id = ?", jobID).Order("timestamp asc").Find(&list).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabase, err.Error())
	}
	return list, nil
}
