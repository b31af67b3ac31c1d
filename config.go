package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string        `yaml:"git_commit" envconfig:"LIMA_GIT_COMMIT"`
	GitTag       string        `yaml:"git_tag" envconfig:"LIMA_GIT_TAG"`
	BuildTime    string        `yaml:"build_time" envconfig:"LIMA_BUILD_TIME"`
	IsProduction bool          `yaml:"is_production" envconfig:"LIMA_IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"LIMA_LOG_LEVEL"`
	LogFolder    string        `yaml:"log_folder" envconfig:"LIMA_LOG_FOLDER"`
	LogMaxSize   int           `yaml:"log_max_size" envconfig:"LIMA_LOG_MAX_SIZE"` // Max size in MB of a log file before rotation
	Storage      StorageConfig `yaml:"storage"`
	BoltDB       BoltDBConfig  `yaml:"boltdb"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" envconfig:"LIMA_STORAGE_BACKEND"`
	CSVFile string `yaml:"csv_file" envconfig:"LIMA_STORAGE_CSV_FILE"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LIMA_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LIMA_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"LIMA_BOLTDB_BUCKET_NAME"`
}

// LoadConfigFile provides an instance of config structure for the all application.
// A missing file is fine: every parameter has a default or can come from the
// environment.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnv reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.LogFolder) == 0 {
		config.LogFolder = "logs"
	}

	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 10
	}

	if len(config.Storage.Backend) == 0 {
		config.Storage.Backend = StorageBackendCSV
	}

	if len(config.Storage.CSVFile) == 0 {
		config.Storage.CSVFile = "library_books.csv"
	}

	if len(config.BoltDB.FilePath) == 0 {
		config.BoltDB.FilePath = "library_books.db"
	}

	if config.BoltDB.Timeout <= 0 {
		config.BoltDB.Timeout = 5 * time.Second
	}

	if len(config.BoltDB.BucketName) == 0 {
		config.BoltDB.BucketName = "library.books"
	}

	if config.Storage.Backend != StorageBackendCSV && config.Storage.Backend != StorageBackendBolt {
		return errors.New("make sure to set a valid storage backend (csv or boltdb) in configuration file")
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `LIMA`.
	err = LoadConfigEnvs("LIMA", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
