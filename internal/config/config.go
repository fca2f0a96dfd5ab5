package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Groq struct {
		BaseURL     string  `yaml:"base_url"`
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"groq"`
	Knowledge struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"knowledge"`
	Risk struct {
		KeywordWeight  int `yaml:"keyword_weight"`
		AlertThreshold int `yaml:"alert_threshold"`
	} `yaml:"risk"`
	Alerts struct {
		Email struct {
			SMTPHost     string `yaml:"smtp_host"`
			SMTPPort     int    `yaml:"smtp_port"`
			SMTPUsername string `yaml:"smtp_username"`
			SMTPPassword string `yaml:"smtp_password"`
			From         string `yaml:"from"`
			CounselorTo  string `yaml:"counselor_to"`
		} `yaml:"email"`
		Telegram struct {
			BotToken string `yaml:"bot_token"`
			ChatID   int64  `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"alerts"`
	Auth struct {
		Enabled     bool   `yaml:"enabled"`
		JWTSecret   string `yaml:"jwt_secret"`
		DatabaseURL string `yaml:"database_url"`
	} `yaml:"auth"`
}

// LoadConfig reads configuration from the specified YAML file, then layers
// secrets from the environment on top so credentials can stay out of the
// file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.Groq.APIKey = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Alerts.Email.SMTPPassword = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Alerts.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Alerts.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Auth.DatabaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama-3.3-70b-versatile"
	}
	if c.Groq.MaxTokens == 0 {
		c.Groq.MaxTokens = 800
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = 0.7
	}
	if c.Risk.KeywordWeight == 0 {
		c.Risk.KeywordWeight = 2
	}
	if c.Risk.AlertThreshold == 0 {
		c.Risk.AlertThreshold = 6
	}
}
