package directory

import (
	"context"

	"gorm.io/gorm"

	types "github.com/safakhan413/user-data-api/internal/domain"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

type ClusterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clusters []*types.Cluster) ([]*types.Cluster, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, clusterIDs []string) ([]*types.Cluster, error)
}

type clusterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClusterRepo(db *gorm.DB, baseLog *logger.Logger) ClusterRepo {
	repoLog := baseLog.With("repo", "ClusterRepo")
	return &clusterRepo{db: db, log: repoLog}
}

func (cr *clusterRepo) Create(ctx context.Context, tx *gorm.DB, clusters []*types.Cluster) ([]*types.Cluster, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(clusters) == 0 {
		return []*types.Cluster{}, nil
	}
	if err := transaction.WithContext(ctx).Omit("Users").Create(&clusters).Error; err != nil {
		return nil, err
	}
	return clusters, nil
}

func (cr *clusterRepo) GetByIDs(ctx context.Context, tx *gorm.DB, clusterIDs []string) ([]*types.Cluster, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Cluster
	if len(clusterIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("cluster_id IN ?", clusterIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
