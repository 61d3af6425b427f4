package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Lushbits/pdbulkupload-sub002/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv loads the given env files from the working directory, falling back
// to the nearest ancestor directory containing a go.mod. Returns the number of
// files loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fileExists(file) {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		if root, ok := moduleRoot(); ok {
			for _, file := range envFiles {
				p := filepath.Join(root, file)
				if fileExists(p) {
					existing = append(existing, p)
				}
			}
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// PlandayOptions holds everything needed to reach the Planday-style portal.
// The refresh token is handed in by the operator; it is never persisted here.
type PlandayOptions struct {
	ClientID     string `env:"PLANDAY_CLIENT_ID"`
	RefreshToken string `env:"PLANDAY_REFRESH_TOKEN"`
	TokenURL     string `env:"PLANDAY_TOKEN_URL" envDefault:"https://id.planday.com/connect/token"`
	APIBaseURL   string `env:"PLANDAY_API_URL" envDefault:"https://openapi.planday.com"`
}

func (p *PlandayOptions) Validate() error {
	if p.ClientID == "" {
		return fmt.Errorf("PLANDAY_CLIENT_ID is required")
	}
	return nil
}

type UploadOptions struct {
	BatchSize    int    `env:"UPLOAD_BATCH_SIZE" envDefault:"20"`
	WagePrefix   string `env:"UPLOAD_WAGE_PREFIX" envDefault:"wage:"`
	DefaultSheet string `env:"UPLOAD_SHEET" envDefault:""`
}

func (u *UploadOptions) Validate() error {
	if u.BatchSize < 1 {
		return fmt.Errorf("UPLOAD_BATCH_SIZE must be positive, got %d", u.BatchSize)
	}
	if u.BatchSize > 100 {
		return fmt.Errorf("UPLOAD_BATCH_SIZE too high, maximum is 100, got %d", u.BatchSize)
	}
	return nil
}

type Configuration struct {
	Planday PlandayOptions
	Upload  UploadOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/app.log"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Upload.Validate(); err != nil {
		return fmt.Errorf("upload configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
