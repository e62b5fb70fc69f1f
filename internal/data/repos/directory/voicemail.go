package directory

import (
	"context"

	"gorm.io/gorm"

	types "github.com/safakhan413/user-data-api/internal/domain"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

type VoicemailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, voicemails []*types.Voicemail) ([]*types.Voicemail, error)
	GetByIdentifiers(ctx context.Context, tx *gorm.DB, identifiers []string) ([]*types.Voicemail, error)
}

type voicemailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoicemailRepo(db *gorm.DB, baseLog *logger.Logger) VoicemailRepo {
	repoLog := baseLog.With("repo", "VoicemailRepo")
	return &voicemailRepo{db: db, log: repoLog}
}

func (vr *voicemailRepo) Create(ctx context.Context, tx *gorm.DB, voicemails []*types.Voicemail) ([]*types.Voicemail, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if len(voicemails) == 0 {
		return []*types.Voicemail{}, nil
	}
	if err := transaction.WithContext(ctx).Omit("Users").Create(&voicemails).Error; err != nil {
		return nil, err
	}
	return voicemails, nil
}

func (vr *voicemailRepo) GetByIdentifiers(ctx context.Context, tx *gorm.DB, identifiers []string) ([]*types.Voicemail, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Voicemail
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
