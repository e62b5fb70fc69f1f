package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/safakhan413/user-data-api/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	// Join tables carry a composite primary key and no payload; register them
	// before AutoMigrate so gorm uses these models instead of generated ones.
	if err := db.SetupJoinTable(&types.User{}, "Phones", &types.UserPhone{}); err != nil {
		return fmt.Errorf("setup user_phones join table: %w", err)
	}
	if err := db.SetupJoinTable(&types.User{}, "Voicemails", &types.UserVoicemail{}); err != nil {
		return fmt.Errorf("setup user_voicemails join table: %w", err)
	}
	return db.AutoMigrate(
		&types.Cluster{},
		&types.User{},
		&types.Phone{},
		&types.Voicemail{},
		&types.UserPhone{},
		&types.UserVoicemail{},
	)
}
