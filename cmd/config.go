package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	JWTTTL    time.Duration

	OTPTTL    time.Duration
	OTPLength int

	// KafkaBrokers empty disables publishing to Kafka.
	KafkaBrokers           []string
	KafkaOrderChangedTopic string
	KafkaSendTimeout       time.Duration

	GuestOrderRetention time.Duration
	AdminPhones         []string
	WSOutboxSize        int

	Tariff services.Tariff
}

// LoadConfig reads the environment, after loading .env when one exists.
// Malformed values fail here rather than at first use.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	r := &envReader{}
	cfg := Config{
		HTTPPort: env("HTTP_PORT", "8080"),
		LogLevel: env("LOG_LEVEL", "info"),

		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", "moving"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		JWTSecret: env("JWT_SECRET", ""),
		JWTTTL:    r.duration("JWT_TTL", "720h"),

		OTPTTL:    r.duration("OTP_TTL", "2m"),
		OTPLength: r.integer("OTP_LENGTH", "6"),

		KafkaBrokers:           list(env("KAFKA_BROKERS", "")),
		KafkaOrderChangedTopic: env("KAFKA_ORDER_CHANGED_TOPIC", "moving.order-changed"),
		KafkaSendTimeout:       r.duration("KAFKA_SEND_TIMEOUT", "5s"),

		GuestOrderRetention: r.duration("GUEST_ORDER_RETENTION", "72h"),
		AdminPhones:         list(env("ADMIN_PHONES", "")),
		WSOutboxSize:        r.integer("WS_OUTBOX_SIZE", "64"),

		Tariff: services.Tariff{
			BaseFare:                r.money("TARIFF_BASE_FARE", "500000"),
			PerKm:                   r.money("TARIFF_PER_KM", "15000"),
			PerFloorWithoutElevator: r.money("TARIFF_PER_FLOOR_NO_ELEVATOR", "100000"),
			PerFloorWithElevator:    r.money("TARIFF_PER_FLOOR_ELEVATOR", "30000"),
			PerWorker:               r.money("TARIFF_PER_WORKER", "400000"),
			PerWalkMeter:            r.money("TARIFF_PER_WALK_METER", "2000"),
		},
	}
	if err := errors.Join(r.errs...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// envReader collects parse failures so all of them are reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) duration(key, fallback string) time.Duration {
	d, err := cast.ToDurationE(env(key, fallback))
	if err == nil && d <= 0 {
		err = fmt.Errorf("%s is not positive", d)
	}
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
	return d
}

func (r *envReader) integer(key, fallback string) int {
	n, err := cast.ToIntE(env(key, fallback))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
	return n
}

func (r *envReader) money(key, fallback string) kernel.Money {
	n, err := cast.ToInt64E(env(key, fallback))
	if err == nil {
		var m kernel.Money
		if m, err = kernel.NewMoney(n); err == nil {
			return m
		}
	}
	r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	return 0
}

func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
