package config

import (
	"RestoPos/pkg/logging"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"
)

const DefaultPath = "./config/config.ini"

type (
	Config struct {
		API struct {
			URL     string
			Timeout int // seconds
			RPS     int
		}
		SESSION struct {
			DB        string
			Namespace string
		}
		LOG struct {
			Debug int
			File  string
		}
		TICKET struct {
			Name    string
			Address string
			Phone   string
			CIF     string
			Logo    string
			Footer  string
		}
		TELEGRAM struct {
			BotToken string
			ChatID   int64
			Debug    int
		}
		SERVICE struct {
			PORT int
		}
	}
)

var cfg Config
var once sync.Once

func Default() Config {
	var c Config
	c.API.URL = "http://localhost:8080/api"
	c.API.Timeout = 15
	c.API.RPS = 10
	c.SESSION.DB = "restopos.db"
	c.LOG.File = "logs/restopos.log"
	c.TICKET.Name = "Restaurante"
	c.TICKET.Footer = "¡Gracias por su visita!"
	c.SERVICE.PORT = 8099
	return c
}

// GetConfig reads DefaultPath once. A missing file keeps the defaults.
func GetConfig() *Config {
	once.Do(func() {
		logger := logging.GetLogger()
		logger.Info("Config:>Read application configurations")

		c, err := Load(DefaultPath)
		if err != nil {
			logger.Fatalf("Config:>Failed to parse gcfg data: %s", err)
		}
		cfg = c
		logger.Info("Config:>Config is read")
	})

	return &cfg
}

// Load reads an ini file over the defaults and applies .env and environment
// overrides.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := gcfg.ReadFileInto(&c, path); err != nil {
				return Config{}, errors.Wrapf(err, "failed gcfg.ReadFileInto(%s)", path)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "failed os.Stat(%s)", path)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := applyEnv(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv("RESTOPOS_API_URL"); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv("RESTOPOS_SESSION_DB"); v != "" {
		c.SESSION.DB = v
	}
	if v := os.Getenv("RESTOPOS_TELEGRAM_TOKEN"); v != "" {
		c.TELEGRAM.BotToken = v
	}
	if v := os.Getenv("RESTOPOS_TELEGRAM_CHAT"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid RESTOPOS_TELEGRAM_CHAT %q", v)
		}
		c.TELEGRAM.ChatID = id
	}
	if v := os.Getenv("RESTOPOS_DEBUG"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid RESTOPOS_DEBUG %q", v)
		}
		c.LOG.Debug = n
	}
	return nil
}
