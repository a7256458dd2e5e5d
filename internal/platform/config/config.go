package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	// AdminAccountID may perform privileged membership assignment.
	AdminAccountID string

	// Chain clock: heights derive from a genesis instant and a fixed
	// block interval.
	GenesisUnix     int64
	BlockIntervalMS uint64

	// Governance tunables.
	VotingWindowBlocks uint64
	ReviewWindowBlocks uint64
	PromotionThreshold uint64
	CreatorShare       uint64
	FinalizerShare     uint64
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "curia"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	admin := strings.TrimSpace(os.Getenv("ADMIN_ACCOUNT_ID"))
	if admin == "" {
		admin = "root"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		AdminAccountID: admin,

		GenesisUnix:     envInt64("CHAIN_GENESIS_UNIX", 0),
		BlockIntervalMS: envUint("CHAIN_BLOCK_INTERVAL_MS", 6000),

		VotingWindowBlocks: envUint("VOTING_WINDOW_BLOCKS", 1000),
		ReviewWindowBlocks: envUint("REVIEW_WINDOW_BLOCKS", 1000),
		PromotionThreshold: envUint("VOTE_PROMOTION_THRESHOLD", 10),
		CreatorShare:       envUint("REWARD_CREATOR_SHARE", 90),
		FinalizerShare:     envUint("REWARD_FINALIZER_SHARE", 10),
	}, nil
}

func envUint(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
