package app

import (
	"gorm.io/gorm"

	"github.com/safakhan413/user-data-api/internal/pkg/logger"
	"github.com/safakhan413/user-data-api/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Directory services.DirectoryService
	Import    services.ImportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(
			log,
			cfg.AdminUsername,
			cfg.AdminPasswordHash,
			cfg.JWTSecretKey,
			cfg.AccessTokenTTL,
		),
		Directory: services.NewDirectoryService(db, log, repos.User),
		Import:    services.NewImportService(db, log, repos.User, repos.Cluster, repos.Phone, repos.Voicemail),
	}
}
