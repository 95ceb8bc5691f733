package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/biolens-ai/bioradar/internal/conf"
	"github.com/biolens-ai/bioradar/internal/inference"
	"github.com/biolens-ai/bioradar/internal/inference/factory"
	"github.com/biolens-ai/bioradar/pkg/config"
	"github.com/biolens-ai/bioradar/pkg/logger"
)

// NewInferenceClient 初始化远程推理客户端
func NewInferenceClient(c *conf.Inference, klogger log.Logger) (inference.Client, func(), error) {
	helper := log.NewHelper(klogger)

	// 将 internal/conf.Inference 转换为 pkg/config.InferenceConfig
	infCfg := &config.InferenceConfig{
		Provider: c.Provider,
	}
	if c.Gradio != nil {
		infCfg.Gradio = config.GradioConfig{
			BaseURL: c.Gradio.BaseUrl,
			APIName: c.Gradio.ApiName,
			Timeout: int(c.Gradio.Timeout),
		}
	}
	if c.Openai != nil {
		infCfg.OpenAI = config.OpenAIConfig{
			BaseURL: c.Openai.BaseUrl,
			APIKey:  c.Openai.ApiKey,
			Model:   c.Openai.Model,
		}
	}

	// 推理路径的独立日志
	logLevel, logFile := "info", ""
	if c.Log != nil {
		logLevel, logFile = c.Log.Level, c.Log.File
	}
	if err := logger.InitLogger(logLevel, logFile); err != nil {
		helper.Errorf("failed to init inference logger: %v", err)
		_ = logger.InitLogger("info", "")
	}

	client, err := factory.NewClient(context.Background(), infCfg)
	if err != nil {
		helper.Errorf("failed to init inference client: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("cleaning up inference client")
	}

	return client, cleanup, nil
}
