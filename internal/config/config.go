package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Postgres   DBConfig
	Redis      RedisConfig
	S3         S3Config
	Cookie     Cookie
	Logger     Logger
	Worker     WorkerConfig
	Jobs       JobsConfig
	Fetcher    FetcherConfig
	FFmpeg     FFmpegConfig
	Whisper    WhisperConfig
	Summarizer SummarizerConfig
}

type ServerConfig struct {
	AppVersion   string
	Port         string
	Mode         string
	JwtSecretKey string
}

type WorkerConfig struct {
	WorkerCount int
	MaxCPUUsage float64
}

type JobsConfig struct {
	Root          string
	ChunkDuration int
	QueueSize     int
}

type FetcherConfig struct {
	YtdlpPath string
	Format    string
}

type FFmpegConfig struct {
	FFmpegPath  string
	FFprobePath string
}

type WhisperConfig struct {
	BinaryPath string
	ModelPath  string
	Language   string
}

type SummarizerConfig struct {
	BinaryPath        string
	ModelDir          string
	ModelKey          string
	MaxChunkChars     int
	MaxNewTokens      int
	NoRepeatNgramSize int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type Cookie struct {
	Name     string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	StatusPrefix  string
}

type S3Config struct {
	Endpoint    string
	Region      string
	AccessKey   string
	SecretKey   string
	ModelBucket string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Jobs.ChunkDuration <= 0 {
		c.Jobs.ChunkDuration = 600
	}
	if c.Jobs.QueueSize <= 0 {
		c.Jobs.QueueSize = 32
	}
	return &c, nil
}
