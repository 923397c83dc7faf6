package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config, configuração da aplicação web. Os valores vêm de um arquivo YAML
// opcional e podem ser sobrescritos por variáveis de ambiente.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	APIBaseURL string `yaml:"api_base_url"`

	// Persistência de carrinho/sessão: arquivo JSON por padrão, Redis
	// quando redis_addr estiver preenchido.
	DataFile  string `yaml:"data_file"`
	RedisAddr string `yaml:"redis_addr"`

	CaptchaSiteKey string `yaml:"captcha_site_key"`
	UploadURL      string `yaml:"upload_url"`
	UploadKey      string `yaml:"upload_key"`

	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
	MailTo   string `yaml:"mail_to"`

	PollInterval    time.Duration `yaml:"poll_interval"`
	CustomerTimeout time.Duration `yaml:"customer_timeout"`
	StaffTimeout    time.Duration `yaml:"staff_timeout"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
}

// Default, retorna a configuração padrão de desenvolvimento.
func Default() *Config {
	return &Config{
		ListenAddr:      ":8082",
		APIBaseURL:      "http://localhost:8080/api",
		DataFile:        "./data.json",
		SMTPHost:        "smtp.gmail.com",
		SMTPPort:        587,
		MailTo:          "contato@artecomcarinho.com.br",
		PollInterval:    30 * time.Second,
		CustomerTimeout: 10 * time.Minute,
		StaffTimeout:    24 * time.Hour,
		SweepInterval:   30 * time.Second,
	}
}

// Load, carrega a configuração do arquivo indicado (se existir) e aplica as
// variáveis de ambiente por cima.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: arquivo %s inválido: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: api_base_url é obrigatório")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + v
	}
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.APIBaseURL, "API_BASE_URL")
	setString(&c.DataFile, "DATA_FILE")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.CaptchaSiteKey, "CAPTCHA_SITE_KEY")
	setString(&c.UploadURL, "UPLOAD_URL")
	setString(&c.UploadKey, "UPLOAD_KEY")
	setString(&c.SMTPHost, "SMTP_HOST")
	setString(&c.SMTPUser, "SMTP_USER")
	setString(&c.SMTPPass, "SMTP_PASS")
	setString(&c.MailTo, "MAIL_TO")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTPPort = port
		}
	}
	setDuration(&c.PollInterval, "POLL_INTERVAL")
	setDuration(&c.CustomerTimeout, "CUSTOMER_TIMEOUT")
	setDuration(&c.StaffTimeout, "STAFF_TIMEOUT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
