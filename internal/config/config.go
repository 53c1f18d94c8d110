package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by CREDENCE_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("CREDENCE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// FramePath returns the YAML file describing the frame of discernment.
// Defaults to "frame.yaml" if not set.
func FramePath() string {
	p := os.Getenv("FRAME_PATH")
	if p == "" {
		return "frame.yaml"
	}
	return p
}

// FusionCapacity returns the focal element budget for fused assignments.
// Defaults to 8 if not set.
func FusionCapacity() int {
	n, err := strconv.Atoi(os.Getenv("FUSION_CAPACITY"))
	if err != nil || n < 1 {
		return 8
	}
	return n
}

// FusionStrategy returns the approximation strategy (topn, summarize).
// Defaults to "topn" if not set.
func FusionStrategy() string {
	s := os.Getenv("FUSION_STRATEGY")
	if s == "" {
		return "topn"
	}
	return s
}

// EvidenceTTL returns how long a sensor report stays live.
// Defaults to 5m if not set.
func EvidenceTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("EVIDENCE_TTL"))
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// FusionInterval returns how often the runner fuses on its own.
// Defaults to 1m if not set.
func FusionInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("FUSION_INTERVAL"))
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// SnapshotInterval returns how often forecaster weights are snapshotted.
// Defaults to 15m if not set.
func SnapshotInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("SNAPSHOT_INTERVAL"))
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}
