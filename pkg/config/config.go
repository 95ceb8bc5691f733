package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 独立分析命令的配置结构体
type Config struct {
	Inference   InferenceConfig   `yaml:"inference"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// InferenceConfig 推理后端相关配置
type InferenceConfig struct {
	Provider string       `yaml:"provider"` // "gradio" or "openai"
	Gradio   GradioConfig `yaml:"gradio"`
	OpenAI   OpenAIConfig `yaml:"openai"`
}

// GradioConfig Gradio Space 配置
type GradioConfig struct {
	BaseURL string `yaml:"base_url"`
	APIName string `yaml:"api_name"`
	Timeout int    `yaml:"timeout"` // seconds
}

// OpenAIConfig OpenAI 兼容后端配置
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
