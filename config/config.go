package config

import (
	"os"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Storage configuration. RedisURL switches the durable store from the
	// embedded Badger database to Redis.
	DataDir  string
	RedisURL string

	// Change feed configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubChannel      string
	KafkaBroker        string
	KafkaTopic         string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Storage
		DataDir:  getEnv("DATA_DIR", "./data"),
		RedisURL: getEnv("REDIS_URL", ""),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubChannel:      getEnv("PUBNUB_CHANNEL", "eventhorizon-changes"),

		// Kafka
		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "eventhorizon.changes"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
