package config

import "os"

// Config carries everything the server reads from the environment.
type Config struct {
	DatabaseURL string
	RedisAddr   string
	UploadDir   string
	ListenAddr  string
}

func Load() Config {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   redisAddr,
		UploadDir:   uploadDir,
		ListenAddr:  addr,
	}
}
