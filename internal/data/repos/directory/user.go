package directory

import (
	"context"

	"gorm.io/gorm"

	types "github.com/safakhan413/user-data-api/internal/domain"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

// UserRepo exposes the typed queries the directory pipeline needs. The query
// builder never leaks past this interface.
type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.User, error)
	FindInRange(ctx context.Context, tx *gorm.DB, startTime, endTime int64) ([]*types.User, error)
	MinPhoneIdentifierPerUser(ctx context.Context, tx *gorm.DB, userIDs []int) (map[int]string, error)
	MinVoicemailIdentifierPerUser(ctx context.Context, tx *gorm.DB, userIDs []int) (map[int]string, error)
	LinkPhones(ctx context.Context, tx *gorm.DB, links []*types.UserPhone) error
	LinkVoicemails(ctx context.Context, tx *gorm.DB, links []*types.UserVoicemail) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	// Omit associations: device links are created explicitly as join rows
	// against pre-deduplicated phones/voicemails.
	if err := transaction.WithContext(ctx).Omit("Phones", "Voicemails", "Cluster").Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindInRange returns users whose origination time lies in the inclusive
// range [startTime, endTime], with phones and voicemails preloaded. Row order
// is unspecified; callers apply their own ordering.
func (ur *userRepo) FindInRange(ctx context.Context, tx *gorm.DB, startTime, endTime int64) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Preload("Phones").
		Preload("Voicemails").
		Where("origination_time BETWEEN ? AND ?", startTime, endTime).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type minIdentifierRow struct {
	UserID        int    `gorm:"column:user_id"`
	MinIdentifier string `gorm:"column:min_identifier"`
}

// MinPhoneIdentifierPerUser returns, for each given user that has at least
// one phone, the lexicographically smallest phone identifier. Users with no
// phones are absent from the map.
func (ur *userRepo) MinPhoneIdentifierPerUser(ctx context.Context, tx *gorm.DB, userIDs []int) (map[int]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	result := make(map[int]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []minIdentifierRow
	if err := transaction.WithContext(ctx).
		Table("user_phones").
		Select("user_phones.user_id AS user_id, MIN(phones.identifier) AS min_identifier").
		Joins("JOIN phones ON phones.phone_id = user_phones.phone_id").
		Where("user_phones.user_id IN ?", userIDs).
		Group("user_phones.user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.UserID] = row.MinIdentifier
	}
	return result, nil
}

// MinVoicemailIdentifierPerUser is the voicemail counterpart of
// MinPhoneIdentifierPerUser.
func (ur *userRepo) MinVoicemailIdentifierPerUser(ctx context.Context, tx *gorm.DB, userIDs []int) (map[int]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	result := make(map[int]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []minIdentifierRow
	if err := transaction.WithContext(ctx).
		Table("user_voicemails").
		Select("user_voicemails.user_id AS user_id, MIN(voicemails.identifier) AS min_identifier").
		Joins("JOIN voicemails ON voicemails.vm_id = user_voicemails.vm_id").
		Where("user_voicemails.user_id IN ?", userIDs).
		Group("user_voicemails.user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.UserID] = row.MinIdentifier
	}
	return result, nil
}

func (ur *userRepo) LinkPhones(ctx context.Context, tx *gorm.DB, links []*types.UserPhone) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(links) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (ur *userRepo) LinkVoicemails(ctx context.Context, tx *gorm.DB, links []*types.UserVoicemail) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(links) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&links).Error
}
