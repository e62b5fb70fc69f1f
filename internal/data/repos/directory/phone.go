package directory

import (
	"context"

	"gorm.io/gorm"

	types "github.com/safakhan413/user-data-api/internal/domain"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

type PhoneRepo interface {
	Create(ctx context.Context, tx *gorm.DB, phones []*types.Phone) ([]*types.Phone, error)
	GetByIdentifiers(ctx context.Context, tx *gorm.DB, identifiers []string) ([]*types.Phone, error)
}

type phoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhoneRepo(db *gorm.DB, baseLog *logger.Logger) PhoneRepo {
	repoLog := baseLog.With("repo", "PhoneRepo")
	return &phoneRepo{db: db, log: repoLog}
}

func (pr *phoneRepo) Create(ctx context.Context, tx *gorm.DB, phones []*types.Phone) ([]*types.Phone, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(phones) == 0 {
		return []*types.Phone{}, nil
	}
	if err := transaction.WithContext(ctx).Omit("Users").Create(&phones).Error; err != nil {
		return nil, err
	}
	return phones, nil
}

func (pr *phoneRepo) GetByIdentifiers(ctx context.Context, tx *gorm.DB, identifiers []string) ([]*types.Phone, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Phone
	if len(identifiers) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("identifier IN ?", identifiers).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
