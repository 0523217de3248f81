package app

import (
	"strings"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/utils"
)

type Config struct {
	Port         string
	Environment  string
	ServiceName  string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	environment := utils.GetEnv("APP_ENV", "development", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "lumina-backend", log)
	originsRaw := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:8501", log)

	origins := []string{}
	for _, o := range strings.Split(originsRaw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return Config{
		Port:         port,
		Environment:  environment,
		ServiceName:  serviceName,
		AllowOrigins: origins,
	}
}
