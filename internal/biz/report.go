package biz

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/biolens-ai/bioradar/internal/conf"
	"github.com/biolens-ai/bioradar/internal/domain"
	"github.com/biolens-ai/bioradar/internal/extract"
	"github.com/biolens-ai/bioradar/internal/inference"
)

// ReportRecord 一次分析的完整留档：输入、模型原文与抽取结果
type ReportRecord struct {
	ID        string
	Username  string
	Input     *domain.BiomarkerInput
	Markdown  string
	Report    *domain.BiomarkerReport
	CreatedAt string
}

// ReportSummary 历史记录列表中的摘要
type ReportSummary struct {
	ID        string
	CreatedAt string
}

// ReportRepo 分析记录仓库接口
type ReportRepo interface {
	// SaveReport 保存一次分析记录
	SaveReport(ctx context.Context, rec *ReportRecord) error
	// ListReports 分页列出某用户的分析记录
	ListReports(ctx context.Context, username string, page, pageSize int) ([]*ReportSummary, int, error)
	// GetReport 按 ID 获取某用户的分析记录
	GetReport(ctx context.Context, id, username string) (*ReportRecord, error)
}

// ReportUseCase 分析业务逻辑：限流 -> 远程推理（429 退避重试）-> 抽取 -> 留档
type ReportUseCase struct {
	repo    ReportRepo
	client  inference.Client
	limiter *rate.Limiter
	log     *log.Helper

	// retryDelay 退避重试的基础等待时长
	retryDelay time.Duration
}

// NewReportUseCase 创建分析业务逻辑实例。repo 可为 nil，此时不留档。
func NewReportUseCase(repo ReportRepo, client inference.Client, c *conf.Inference, logger log.Logger) *ReportUseCase {
	qps, rpm := 1, 60
	if c != nil && c.Concurrency != nil {
		if c.Concurrency.Qps > 0 {
			qps = int(c.Concurrency.Qps)
		}
		if c.Concurrency.Rpm > 0 {
			rpm = int(c.Concurrency.Rpm)
		}
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)

	return &ReportUseCase{
		repo:       repo,
		client:     client,
		limiter:    limiter,
		log:        log.NewHelper(logger),
		retryDelay: 2 * time.Second,
	}
}

// Analyze 执行一次完整分析并返回结构化报告
func (uc *ReportUseCase) Analyze(ctx context.Context, username string, in *domain.BiomarkerInput) (*domain.BiomarkerReport, error) {
	markdown, err := uc.generate(ctx, in)
	if err != nil {
		return nil, err
	}

	// 抽取对任意文本都不会失败，缺失段落退化为默认值
	report := extract.Report(markdown)

	if uc.repo != nil {
		rec := &ReportRecord{
			ID:       uuid.NewString(),
			Username: username,
			Input:    in,
			Markdown: markdown,
			Report:   report,
		}
		// 留档失败不影响本次结果
		if err := uc.repo.SaveReport(ctx, rec); err != nil {
			uc.log.Errorf("save report record failed: %v", err)
		}
	}

	return report, nil
}

// generate 调用远程推理，对限流类错误做指数退避重试
func (uc *ReportUseCase) generate(ctx context.Context, in *domain.BiomarkerInput) (string, error) {
	maxRetries := 3
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := uc.limiter.Wait(ctx); err != nil {
			return "", err
		}

		markdown, err := uc.client.Generate(ctx, in)
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if i < maxRetries {
					uc.log.Warnf("inference rate limited, retrying: %v", err)
					if err := uc.sleep(ctx, uc.retryDelay*time.Duration(1<<i)); err != nil {
						return "", err
					}
					continue
				}
			}
			return "", err
		}
		return markdown, nil
	}
	return "", lastErr
}

// sleep 可被 ctx 取消的等待
func (uc *ReportUseCase) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

// List 分页列出历史分析记录
func (uc *ReportUseCase) List(ctx context.Context, username string, page, pageSize int) ([]*ReportSummary, int, error) {
	if uc.repo == nil {
		return nil, 0, errors.NotFound("REPORT_NOT_FOUND", "report storage is not configured")
	}
	return uc.repo.ListReports(ctx, username, page, pageSize)
}

// Get 按 ID 获取历史分析记录
func (uc *ReportUseCase) Get(ctx context.Context, id, username string) (*ReportRecord, error) {
	if uc.repo == nil {
		return nil, errors.NotFound("REPORT_NOT_FOUND", "report storage is not configured")
	}
	return uc.repo.GetReport(ctx, id, username)
}
