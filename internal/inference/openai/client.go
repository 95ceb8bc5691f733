// Package openai 通过 OpenAI 兼容接口生成健康报告，
// 作为 Gradio Space 之外的备选推理后端。
package openai

import (
	"context"
	"fmt"
	"strings"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/biolens-ai/bioradar/internal/domain"
	"github.com/biolens-ai/bioradar/internal/inference"
)

// systemPrompt 约定模型输出的 markdown 版式。后续抽取依赖这里的段落
// 标题与列表格式，调整措辞时必须与 extract 包的模式保持同步。
const systemPrompt = `You are a clinical laboratory assistant. Given a patient's blood biomarker
panel, write a health report in markdown with exactly these sections, in order:

Normal Ranges
- one "- <Biomarker>: <range>" bullet per biomarker, range starting with a number

Biomarker Analysis
| Biomarker | Value | Status | Insight |
| --- | --- | --- | --- |
one row per biomarker, exactly four columns

Executive Summary
numbered list "1. ..." of top priorities, then "- ..." bullets for strengths
(use the words Normal, within, good or optimal for values in range)

System-Specific Analysis
- Status: <one word>
- Explanation: <one sentence>

Personalized Action Plan
- Nutrition: <advice>
- Lifestyle: <advice>
- Medical: <advice>
- Testing: <advice>

Interaction Alerts
- one bullet per alert, or "- None" if there are none

Do not wrap the report in code fences.`

// Client 基于 eino ChatModel 的推理客户端
type Client struct {
	chatModel model.ChatModel
}

// Config OpenAI 兼容后端配置
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// NewClient 创建 OpenAI 兼容后端客户端
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	chatModel, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat model init failed: %w", err)
	}
	return &Client{chatModel: chatModel}, nil
}

// Ensure Client implements inference.Client
var _ inference.Client = (*Client)(nil)

// Generate implements inference.Client
func (c *Client) Generate(ctx context.Context, in *domain.BiomarkerInput) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: buildPrompt(in)},
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// buildPrompt 将输入指标拼装为用户消息
func buildPrompt(in *domain.BiomarkerInput) string {
	var sb strings.Builder
	sb.WriteString("Patient biomarker panel:\n")
	fmt.Fprintf(&sb, "- Albumin: %.2f g/dL\n", in.Albumin)
	fmt.Fprintf(&sb, "- Creatinine: %.2f mg/dL\n", in.Creatinine)
	fmt.Fprintf(&sb, "- Glucose: %.2f mg/dL\n", in.Glucose)
	fmt.Fprintf(&sb, "- CRP: %.2f mg/L\n", in.CRP)
	fmt.Fprintf(&sb, "- MCV: %.2f fL\n", in.MCV)
	fmt.Fprintf(&sb, "- RDW: %.2f %%\n", in.RDW)
	fmt.Fprintf(&sb, "- ALP: %.2f U/L\n", in.ALP)
	fmt.Fprintf(&sb, "- WBC: %.2f x10^9/L\n", in.WBC)
	fmt.Fprintf(&sb, "- Lymphocytes: %.2f %%\n", in.Lymphocytes)
	fmt.Fprintf(&sb, "Patient profile: age %d, gender %s, height %.1f cm, weight %.1f kg.\n", in.Age, in.Gender, in.Height, in.Weight)
	sb.WriteString("Write the health report now.")
	return sb.String()
}
