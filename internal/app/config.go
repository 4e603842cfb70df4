package app

import (
	"strings"
	"time"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/utils"
)

type Config struct {
	ServiceName     string
	Environment     string
	Version         string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	OperatorEmail   string
	OperatorPass    string
	GoogleClientID  string
	MediaDir        string
	PublicBaseURL   string
	CORSOrigins     []string
	ChatCacheWindow int
}

func LoadConfig(log *logger.Logger) Config {
	accessTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	var origins []string
	for _, o := range strings.Split(utils.GetEnv("CORS_ORIGINS", "", log), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		ServiceName:     utils.GetEnv("SERVICE_NAME", "pulsemind-backend", log),
		Environment:     utils.GetEnv("ENVIRONMENT", "development", log),
		Version:         utils.GetEnv("SERVICE_VERSION", "dev", log),
		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(accessTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTTLSeconds) * time.Second,
		OperatorEmail:   utils.GetEnv("OPERATOR_EMAIL", "", log),
		OperatorPass:    utils.GetEnv("OPERATOR_PASSWORD", "", log),
		GoogleClientID:  utils.GetEnv("GOOGLE_CLIENT_ID", "", log),
		MediaDir:        utils.GetEnv("MEDIA_DIR", "./media", log),
		PublicBaseURL:   utils.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080", log),
		CORSOrigins:     origins,
		ChatCacheWindow: utils.GetEnvAsInt("CHAT_CACHE_WINDOW", 100, log),
	}
}
