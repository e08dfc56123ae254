package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: gym
  password: gym
  name: gymbooking
  ssl_mode: disable
redis:
  addr: localhost:6379
kafka:
  brokers: ["localhost:9092"]
  booking_topic: booking_events
  notifications_topic: notifications
  group_id: gymbooking-worker
razorpay:
  key_id: rzp_test_key
  key_secret: shhh
session:
  ttl_minutes: 30
worker:
  stale_sweep_minutes: 10
  stale_after_minutes: 60
`
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "host=localhost port=5432 user=gym password=gym dbname=gymbooking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "rzp_test_key", cfg.Razorpay.KeyID)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
}

func TestLoadConfig_EnvCredentialFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("http:\n  address: \":8080\"\n"), 0o644))

	t.Setenv("KEY_ID", "rzp_env_key")
	t.Setenv("KEY_SECRET", "env_secret")

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "rzp_env_key", cfg.Razorpay.KeyID)
	assert.Equal(t, "env_secret", cfg.Razorpay.KeySecret)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	assert.Error(t, err)
}
