package app

import (
	"gorm.io/gorm"

	"github.com/safakhan413/user-data-api/internal/data/repos/directory"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

type Repos struct {
	User      directory.UserRepo
	Cluster   directory.ClusterRepo
	Phone     directory.PhoneRepo
	Voicemail directory.VoicemailRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      directory.NewUserRepo(db, log),
		Cluster:   directory.NewClusterRepo(db, log),
		Phone:     directory.NewPhoneRepo(db, log),
		Voicemail: directory.NewVoicemailRepo(db, log),
	}
}
