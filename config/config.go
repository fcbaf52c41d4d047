package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	if c.Server.Port == "" {
		c.Server.Port = "4000"
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// MongoURI returns the MongoDB connection string from the environment.
func MongoURI() string {
	return os.Getenv("MONGODB_URI")
}

// MongoDBName returns the database name, defaulting to "inkpress".
func MongoDBName() string {
	name := os.Getenv("MONGODB_DB")
	if name == "" {
		name = "inkpress"
	}
	return name
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
