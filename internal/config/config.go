package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations, costs and capacities.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	SlotCapacity   int    // max non-cancelled reservations per (date, time) slot
	SMTP           SMTPConfig
}

// SMTPConfig carries outbound mail settings.  When Enabled is false the
// mailer logs messages instead of sending them, which is the expected
// mode in development.
type SMTPConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  SLOT_CAPACITY is
// the single source of truth for slot capacity; both the availability
// check and the booking path use it.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		SlotCapacity:   capacity(),
		SMTP:           loadSMTP(),
	}
}

// capacity reads SLOT_CAPACITY with a default of one booking per slot.
// Values below one are clamped so a misconfigured environment cannot
// disable booking entirely.
func capacity() int {
	n := envInt("SLOT_CAPACITY", 1)
	if n < 1 {
		n = 1
	}
	return n
}

func loadSMTP() SMTPConfig {
	return SMTPConfig{
		Enabled:   envBool("SMTP_ENABLED", false),
		Host:      os.Getenv("SMTP_HOST"),
		Port:      envInt("SMTP_PORT", 587),
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: envStr("SMTP_FROM_EMAIL", "reservations@flinticeats.com"),
		FromName:  envStr("SMTP_FROM_NAME", "Flintic Eats"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
