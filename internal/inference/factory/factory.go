package factory

import (
	"context"
	"fmt"

	"github.com/biolens-ai/bioradar/internal/inference"
	"github.com/biolens-ai/bioradar/internal/inference/gradio"
	"github.com/biolens-ai/bioradar/internal/inference/openai"
	"github.com/biolens-ai/bioradar/pkg/config"
)

// NewClient 根据配置创建推理客户端实例
func NewClient(ctx context.Context, cfg *config.InferenceConfig) (inference.Client, error) {
	provider := cfg.Provider
	if provider == "" {
		// 默认回退逻辑：优先使用已配置的 Gradio Space
		switch {
		case cfg.Gradio.BaseURL != "":
			provider = "gradio"
		case cfg.OpenAI.APIKey != "":
			provider = "openai"
		default:
			return nil, fmt.Errorf("inference provider not configured")
		}
	}

	switch provider {
	case "gradio":
		if cfg.Gradio.BaseURL == "" {
			return nil, fmt.Errorf("gradio base url is missing")
		}
		apiName := cfg.Gradio.APIName
		if apiName == "" {
			apiName = "respond"
		}
		return gradio.NewClient(cfg.Gradio.BaseURL, apiName, cfg.Gradio.Timeout), nil

	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai api key is missing")
		}
		return openai.NewClient(ctx, openai.Config{
			BaseURL: cfg.OpenAI.BaseURL,
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
		})

	default:
		return nil, fmt.Errorf("unknown inference provider: %s", provider)
	}
}
