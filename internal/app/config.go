package app

import (
	"time"

	"github.com/safakhan413/user-data-api/internal/pkg/logger"
	"github.com/safakhan413/user-data-api/internal/utils"
)

// Config is the explicit configuration object handed to construction; there
// are no process-wide singletons reading the environment at use time.
type Config struct {
	AdminUsername     string
	AdminPasswordHash string
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	adminUsername := utils.GetEnv("ADMIN_USERNAME", "admin", log)
	adminPasswordHash := utils.GetEnv("ADMIN_PASSWORD_HASH", "", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30, log)
	return Config{
		AdminUsername:     adminUsername,
		AdminPasswordHash: adminPasswordHash,
		JWTSecretKey:      jwtSecretKey,
		AccessTokenTTL:    time.Duration(accessTokenTTLMinutes) * time.Minute,
	}
}
