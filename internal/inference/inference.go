package inference

import (
	"context"

	"github.com/biolens-ai/bioradar/internal/domain"
)

// Client 定义通用的远程推理接口：输入十三项指标，
// 返回模型生成的 markdown 健康报告原文。
type Client interface {
	Generate(ctx context.Context, in *domain.BiomarkerInput) (string, error)
}
