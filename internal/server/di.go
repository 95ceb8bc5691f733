package server

import (
	"github.com/google/wire"

	"github.com/biolens-ai/bioradar/internal/biz"
	"github.com/biolens-ai/bioradar/internal/data"
	"github.com/biolens-ai/bioradar/internal/service"
)

// ProviderSet 是分析服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewInferenceClient,

	// Data providers
	data.NewData,
	data.NewUserRepo,
	data.NewReportRepo,

	// UseCase providers
	biz.NewUserUseCase,
	biz.NewReportUseCase,

	// Service providers
	service.NewHealthService,
)
