// Package gradio 调用托管在 Gradio Space 上的推理接口。
//
// Gradio 的 HTTP API 是两段式的：先 POST 参数拿到 event_id，
// 再 GET 同名路径读取 SSE 流，最后一条 data 行就是调用结果。
package gradio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/biolens-ai/bioradar/internal/domain"
	"github.com/biolens-ai/bioradar/internal/inference"
)

const defaultTimeout = 300 * time.Second

// Client Gradio Space API 客户端
type Client struct {
	baseURL string
	apiName string
	client  *http.Client
}

// NewClient 创建一个新的 Gradio 客户端。timeout 单位为秒，0 表示使用默认值。
func NewClient(baseURL, apiName string, timeout int) *Client {
	t := defaultTimeout
	if timeout > 0 {
		t = time.Duration(timeout) * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiName: strings.Trim(apiName, "/"),
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements inference.Client
var _ inference.Client = (*Client)(nil)

// callRequest Gradio 调用请求体，data 中的参数顺序与 Space 端点签名一致
type callRequest struct {
	Data []any `json:"data"`
}

// callResponse 第一段调用的响应
type callResponse struct {
	EventID string `json:"event_id"`
}

// Generate implements inference.Client
func (c *Client) Generate(ctx context.Context, in *domain.BiomarkerInput) (string, error) {
	eventID, err := c.submit(ctx, in)
	if err != nil {
		return "", err
	}
	return c.fetchResult(ctx, eventID)
}

// submit 提交推理参数，返回 event_id
func (c *Client) submit(ctx context.Context, in *domain.BiomarkerInput) (string, error) {
	payload, err := json.Marshal(callRequest{Data: []any{
		in.Albumin,
		in.Creatinine,
		in.Glucose,
		in.CRP,
		in.MCV,
		in.RDW,
		in.ALP,
		in.WBC,
		in.Lymphocytes,
		in.Age,
		in.Gender,
		in.Height,
		in.Weight,
	}})
	if err != nil {
		return "", fmt.Errorf("marshal request failed: %w", err)
	}

	url := fmt.Sprintf("%s/gradio_api/call/%s", c.baseURL, c.apiName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gradio api error (status %d): %s", res.StatusCode, string(body))
	}

	var callResp callResponse
	if err := json.Unmarshal(body, &callResp); err != nil {
		return "", fmt.Errorf("unmarshal response failed: %w", err)
	}
	if callResp.EventID == "" {
		return "", fmt.Errorf("gradio api returned empty event id: %s", string(body))
	}
	return callResp.EventID, nil
}

// fetchResult 读取 SSE 结果流并取出文本结果
func (c *Client) fetchResult(ctx context.Context, eventID string) (string, error) {
	url := fmt.Sprintf("%s/gradio_api/call/%s/%s", c.baseURL, c.apiName, eventID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("gradio api error (status %d): %s", res.StatusCode, string(body))
	}

	var event, lastData string
	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if event == "error" {
				return "", fmt.Errorf("gradio inference error: %s", data)
			}
			lastData = data
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read event stream failed: %w", err)
	}
	if lastData == "" || lastData == "null" {
		return "", fmt.Errorf("gradio api returned no result")
	}

	// 结果是一个 JSON 数组，对应端点的各个输出，这里只关心第一个文本输出
	var outputs []any
	if err := json.Unmarshal([]byte(lastData), &outputs); err != nil {
		return "", fmt.Errorf("unmarshal result failed: %w", err)
	}
	if len(outputs) == 0 {
		return "", fmt.Errorf("gradio api returned empty result array")
	}
	text, ok := outputs[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected result type %T", outputs[0])
	}
	return text, nil
}
