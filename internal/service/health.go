package service

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/biolens-ai/bioradar/internal/biz"
	"github.com/biolens-ai/bioradar/internal/domain"
)

// HealthService 对外 API 的应用服务层
type HealthService struct {
	ucUser   *biz.UserUseCase
	ucReport *biz.ReportUseCase
	log      *log.Helper
}

func NewHealthService(ucUser *biz.UserUseCase, ucReport *biz.ReportUseCase, logger log.Logger) *HealthService {
	return &HealthService{
		ucUser:   ucUser,
		ucReport: ucReport,
		log:      log.NewHelper(logger),
	}
}

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type ReportSummary struct {
	Id        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type ListReportsReply struct {
	Reports []*ReportSummary `json:"reports"`
	Total   int              `json:"total"`
}

type ReportDetail struct {
	Id        string                  `json:"id"`
	CreatedAt string                  `json:"created_at"`
	Input     *domain.BiomarkerInput  `json:"input"`
	Report    *domain.BiomarkerReport `json:"report"`
}

// Analyze 校验输入并执行一次分析。username 为空表示匿名调用。
func (s *HealthService) Analyze(ctx context.Context, username string, in *domain.BiomarkerInput) (*domain.BiomarkerReport, error) {
	if err := in.Validate(); err != nil {
		return nil, errors.BadRequest("INVALID_INPUT", err.Error())
	}
	report, err := s.ucReport.Analyze(ctx, username, in)
	if err != nil {
		s.log.Errorf("analyze failed: %v", err)
		// 远程推理失败按服务端错误上报，错误详情透传给调用方
		return nil, errors.InternalServer("INFERENCE_FAILED", err.Error())
	}
	return report, nil
}

func (s *HealthService) Register(ctx context.Context, req *RegisterReq) (*RegisterReply, error) {
	err := s.ucUser.Register(ctx, req.Username, req.Password)
	if err != nil {
		return &RegisterReply{Success: false, Message: err.Error()}, nil
	}
	return &RegisterReply{Success: true, Message: "success"}, nil
}

func (s *HealthService) Login(ctx context.Context, req *LoginReq) (*LoginReply, error) {
	token, err := s.ucUser.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &LoginReply{Token: token, Username: req.Username}, nil
}

func (s *HealthService) ListReports(ctx context.Context, username string, page, pageSize int) (*ListReportsReply, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	records, total, err := s.ucReport.List(ctx, username, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*ReportSummary, 0, len(records))
	for _, r := range records {
		list = append(list, &ReportSummary{
			Id:        r.ID,
			CreatedAt: r.CreatedAt,
		})
	}

	return &ListReportsReply{Reports: list, Total: total}, nil
}

func (s *HealthService) GetReport(ctx context.Context, username, id string) (*ReportDetail, error) {
	rec, err := s.ucReport.Get(ctx, id, username)
	if err != nil {
		return nil, err
	}
	return &ReportDetail{
		Id:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Input:     rec.Input,
		Report:    rec.Report,
	}, nil
}

// Authenticate 解析 Authorization 头并返回用户名
func (s *HealthService) Authenticate(authorization string) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer"))
	if token == "" {
		return "", errors.Unauthorized("AUTH_FAILED", "missing token")
	}
	return s.ucUser.ParseToken(token)
}
