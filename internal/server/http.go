package server

import (
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/biolens-ai/bioradar/internal/conf"
	"github.com/biolens-ai/bioradar/internal/domain"
	"github.com/biolens-ai/bioradar/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.HealthService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	registerRoutes(srv, s)

	return srv
}

func registerRoutes(srv *http.Server, s *service.HealthService) {
	r := srv.Route("/api")

	r.POST("/analyze", func(ctx http.Context) error {
		var in domain.BiomarkerInput
		if err := ctx.Bind(&in); err != nil {
			return errors.BadRequest("INVALID_BODY", err.Error())
		}
		// 携带有效 Token 时把分析记录挂到用户名下，匿名调用同样放行
		username, _ := s.Authenticate(ctx.Header().Get("Authorization"))
		report, err := s.Analyze(ctx, username, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, report)
	})

	r.POST("/register", func(ctx http.Context) error {
		var req service.RegisterReq
		if err := ctx.Bind(&req); err != nil {
			return errors.BadRequest("INVALID_BODY", err.Error())
		}
		reply, err := s.Register(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/login", func(ctx http.Context) error {
		var req service.LoginReq
		if err := ctx.Bind(&req); err != nil {
			return errors.BadRequest("INVALID_BODY", err.Error())
		}
		reply, err := s.Login(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/reports", func(ctx http.Context) error {
		username, err := s.Authenticate(ctx.Header().Get("Authorization"))
		if err != nil {
			return err
		}
		page, _ := strconv.Atoi(ctx.Query().Get("page"))
		pageSize, _ := strconv.Atoi(ctx.Query().Get("page_size"))
		reply, err := s.ListReports(ctx, username, page, pageSize)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/reports/{id}", func(ctx http.Context) error {
		username, err := s.Authenticate(ctx.Header().Get("Authorization"))
		if err != nil {
			return err
		}
		reply, err := s.GetReport(ctx, username, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}
