package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the server's environment-driven settings. When SheetID is
// empty the server falls back to the local workbook store.
type Config struct {
	Port            string
	SheetID         string
	SheetName       string
	CredentialsFile string
	WorkbookPath    string
	MQTTBrokerURL   string
	MQTTTopicPrefix string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}
	return Config{
		Port:            getenv("PORT", "8080"),
		SheetID:         os.Getenv("SHEET_ID"),
		SheetName:       getenv("SHEET_NAME", "breakdowns"),
		CredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", "service-account.json"),
		WorkbookPath:    getenv("WORKBOOK_PATH", "breakdowns.xlsx"),
		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTTopicPrefix: getenv("MQTT_TOPIC_PREFIX", "rentelo/breakdowns"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
