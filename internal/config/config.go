package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Vacation   VacationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. Tokens are issued by
// the external identity service; this backend only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the tunables of the attendance compiler.
// Multipliers are percentages (125 = 1.25x) so they stay integral in env vars.
type AttendanceConfig struct {
	DailyCapMinutes      int
	WorkdayMultiplierPct int
	RestDayMultiplierPct int
	HolidayMultiplierPct int
	NightShiftStartHour  int
	NightShiftEndHour    int
}

// VacationConfig drives the scheduled vacation accrual job.
type VacationConfig struct {
	AccrualDaysPerPeriod string // decimal string, e.g. "1.25"
}

func Load() (*Config, error) {
	// .env is optional outside development; real deployments use env vars.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timecontrol"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	dailyCap, err := strconv.Atoi(getEnv("ATTENDANCE_DAILY_CAP_MINUTES", "1440"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DAILY_CAP_MINUTES: %w", err)
	}
	workdayPct, err := strconv.Atoi(getEnv("OVERTIME_WORKDAY_MULTIPLIER_PCT", "125"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_WORKDAY_MULTIPLIER_PCT: %w", err)
	}
	restPct, err := strconv.Atoi(getEnv("OVERTIME_REST_MULTIPLIER_PCT", "150"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_REST_MULTIPLIER_PCT: %w", err)
	}
	holidayPct, err := strconv.Atoi(getEnv("OVERTIME_HOLIDAY_MULTIPLIER_PCT", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_HOLIDAY_MULTIPLIER_PCT: %w", err)
	}
	nightStart, err := strconv.Atoi(getEnv("NIGHT_SHIFT_START_HOUR", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid NIGHT_SHIFT_START_HOUR: %w", err)
	}
	nightEnd, err := strconv.Atoi(getEnv("NIGHT_SHIFT_END_HOUR", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid NIGHT_SHIFT_END_HOUR: %w", err)
	}

	config.Attendance = AttendanceConfig{
		DailyCapMinutes:      dailyCap,
		WorkdayMultiplierPct: workdayPct,
		RestDayMultiplierPct: restPct,
		HolidayMultiplierPct: holidayPct,
		NightShiftStartHour:  nightStart,
		NightShiftEndHour:    nightEnd,
	}

	config.Vacation = VacationConfig{
		AccrualDaysPerPeriod: getEnv("VACATION_ACCRUAL_DAYS_PER_PERIOD", "1.25"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.DailyCapMinutes <= 0 || c.Attendance.DailyCapMinutes > 1440 {
		return fmt.Errorf("ATTENDANCE_DAILY_CAP_MINUTES must be between 1 and 1440")
	}
	if c.Attendance.WorkdayMultiplierPct < 100 {
		return fmt.Errorf("OVERTIME_WORKDAY_MULTIPLIER_PCT must be at least 100")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
