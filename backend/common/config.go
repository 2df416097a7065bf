package common

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	StorageDriverDisk  = "disk"
	StorageDriverMinio = "minio"
)

// Config is the runtime configuration of the server. It is built once at
// startup and handed to every component that needs it.
type Config struct {
	Port          int
	ServerAddress string
	UploadPath    string
	LogDir        string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string

	StorageDriver  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string

	RedisConnString string
	MaxUploadBytes  int64
	RateLimit       bool
	EnableGzip      bool

	PrintQR      bool
	PrintVersion bool
	PrintHelp    bool
}

// LoadDefaults fills c with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = 3000
	c.ServerAddress = ""
	c.UploadPath = "uploads"
	c.LogDir = ""
	c.StoreDriver = StoreDriverMongo
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.MongoDatabase = "loginSystem"
	c.StorageDriver = StorageDriverDisk
	c.MinioBucket = "uploads"
	c.MaxUploadBytes = 0
	c.RateLimit = true
	c.EnableGzip = false
}

// LoadConfig applies defaults, then the environment, then the command line
// arguments (without the program name), and validates the result.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.loadEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args, io.Discard); err != nil {
		return nil, err
	}
	if cfg.PrintVersion || cfg.PrintHelp {
		return cfg, nil
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	cfg.ServerAddress = strings.TrimRight(cfg.ServerAddress, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("SERVER_ADDRESS", &c.ServerAddress)
	str("UPLOAD_PATH", &c.UploadPath)
	str("LOG_DIR", &c.LogDir)
	str("STORE_DRIVER", &c.StoreDriver)
	str("MONGO_URI", &c.MongoURI)
	str("MONGO_DATABASE", &c.MongoDatabase)
	str("STORAGE_DRIVER", &c.StorageDriver)
	str("MINIO_ENDPOINT", &c.MinioEndpoint)
	str("MINIO_ACCESS_KEY", &c.MinioAccessKey)
	str("MINIO_SECRET_KEY", &c.MinioSecretKey)
	str("MINIO_BUCKET", &c.MinioBucket)
	str("REDIS_CONN_STRING", &c.RedisConnString)

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		c.Port = port
	}
	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := getenv("RATE_LIMIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for RATE_LIMIT: %w", err)
		}
		c.RateLimit = b
	}
	if v := getenv("ENABLE_GZIP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for ENABLE_GZIP: %w", err)
		}
		c.EnableGzip = b
	}
	return nil
}

func (c *Config) parseFlags(args []string, output io.Writer) error {
	fs := flag.NewFlagSet("qrdrop", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&c.Port, "port", c.Port, "the listening port")
	fs.StringVar(&c.ServerAddress, "server-address", c.ServerAddress, "public base URL encoded in QR codes")
	fs.StringVar(&c.UploadPath, "upload-path", c.UploadPath, "directory for uploaded files (disk storage)")
	fs.StringVar(&c.LogDir, "log-dir", c.LogDir, "specify the log directory")
	fs.StringVar(&c.StoreDriver, "store", c.StoreDriver, "record store driver: mongo or memory")
	fs.StringVar(&c.StorageDriver, "storage", c.StorageDriver, "blob storage driver: disk or minio")
	fs.BoolVar(&c.EnableGzip, "gzip", c.EnableGzip, "enable gzip compression")
	fs.BoolVar(&c.PrintQR, "qr", c.PrintQR, "print the server address as a QR code on startup")
	fs.BoolVar(&c.PrintVersion, "version", false, "print version and exit")
	fs.BoolVar(&c.PrintHelp, "help", false, "print help and exit")
	return fs.Parse(args)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return errors.New("mongo store requires MONGO_URI and MONGO_DATABASE")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	switch c.StorageDriver {
	case StorageDriverDisk:
		if c.UploadPath == "" {
			return errors.New("disk storage requires UPLOAD_PATH")
		}
	case StorageDriverMinio:
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" || c.MinioBucket == "" {
			return errors.New("minio configuration incomplete")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.MaxUploadBytes < 0 {
		return errors.New("MAX_UPLOAD_BYTES must not be negative")
	}
	return nil
}

func PrintHelp() {
	fmt.Println("qrdrop " + Version + ": file drop with per-file QR codes")
	fmt.Println("Usage: qrdrop [--port <port>] [--store mongo|memory] [--storage disk|minio] [--log-dir <log directory>] [--qr] [--version] [--help]")
}
