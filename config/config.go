package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the webreader backend
type Config struct {
	General  GeneralConfig  `mapstructure:"general"`
	Redis    RedisConfig    `mapstructure:"redis"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Naver    NaverConfig    `mapstructure:"naver"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Summary  SummaryConfig  `mapstructure:"summary"`
	STT      STTConfig      `mapstructure:"stt"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug  bool   `mapstructure:"debug"`
	Listen string `mapstructure:"listen"`
}

// RedisConfig contains connection settings for the session store
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Addr() string { return fmt.Sprintf("%s:%s", r.Host, r.Port) }

func (r RedisConfig) Validate() error {
	if r.Host == "" || r.Port == "" {
		return fmt.Errorf("redis not configured (redis.host/port)")
	}
	return nil
}

// OpenAIConfig contains the LLM provider settings
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	CompletionModel string        `mapstructure:"completion_model"`
	ClassifyModel   string        `mapstructure:"classify_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (o OpenAIConfig) Validate() error {
	if o.APIKey == "" {
		return fmt.Errorf("openai api key not configured (openai.api_key)")
	}
	return nil
}

// NaverConfig holds credentials for the Naver open APIs. News search falls
// back to model-generated articles when the client id/secret are absent, so
// these are optional.
type NaverConfig struct {
	NewsClientID     string `mapstructure:"news_client_id"`
	NewsClientSecret string `mapstructure:"news_client_secret"`
	DictURL          string `mapstructure:"dict_url"`
	STTClientID      string `mapstructure:"stt_client_id"`
	STTClientSecret  string `mapstructure:"stt_client_secret"`
}

func (n NaverConfig) HasNewsCredentials() bool {
	return n.NewsClientID != "" && n.NewsClientSecret != ""
}

// SessionsConfig controls the TTLs of the three session namespaces
type SessionsConfig struct {
	ContentTTL time.Duration `mapstructure:"content_ttl"`
	PendingTTL time.Duration `mapstructure:"pending_ttl"`
	NewsTTL    time.Duration `mapstructure:"news_ttl"`
}

// SummaryConfig controls the text summarization service
type SummaryConfig struct {
	Languages []string `mapstructure:"languages"`
}

// STTConfig controls the Clova speech-to-text boundary
type STTConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
	MinFileSize int64  `mapstructure:"min_file_size"`
}

func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetDefault("general.listen", ":8000")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.timeout", 5*time.Second)
	viper.SetDefault("openai.completion_model", "gpt-4o")
	viper.SetDefault("openai.classify_model", "gpt-4o-mini")
	viper.SetDefault("openai.temperature", 0.3)
	viper.SetDefault("openai.max_tokens", 2048)
	viper.SetDefault("openai.timeout", 30*time.Second)
	viper.SetDefault("naver.dict_url", "https://dict.naver.com/search.dict?query=")
	viper.SetDefault("sessions.content_ttl", time.Hour)
	viper.SetDefault("sessions.pending_ttl", 5*time.Minute)
	viper.SetDefault("sessions.news_ttl", time.Hour)
	viper.SetDefault("summary.languages", []string{"ko", "en", "ja", "zh"})
	viper.SetDefault("stt.endpoint", "https://naveropenapi.apigw.ntruss.com/recog/v1/stt")
	viper.SetDefault("stt.max_file_size", int64(50*1024*1024))
	viper.SetDefault("stt.min_file_size", int64(1024))

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("WEBREADER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// config file is optional; env vars and defaults cover everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Redis.Validate(); err != nil {
		panic(err)
	}
	return &config
}
