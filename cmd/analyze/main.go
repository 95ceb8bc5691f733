// 独立分析命令：不经过 HTTP 服务，直接读取一份指标 JSON 文件，
// 调用配置的推理后端并输出抽取后的结构化报告。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	klog "github.com/go-kratos/kratos/v2/log"

	"github.com/biolens-ai/bioradar/internal/biz"
	"github.com/biolens-ai/bioradar/internal/conf"
	"github.com/biolens-ai/bioradar/internal/domain"
	"github.com/biolens-ai/bioradar/internal/inference/factory"
	"github.com/biolens-ai/bioradar/pkg/config"
	"github.com/biolens-ai/bioradar/pkg/logger"
)

func main() {
	var (
		flagconf  string
		flaginput string
	)
	flag.StringVar(&flagconf, "conf", "configs/analyze.yaml", "config path")
	flag.StringVar(&flaginput, "input", "", "path to a biomarker input JSON file")
	flag.Parse()

	if flaginput == "" {
		log.Fatal("missing -input: path to a biomarker input JSON file")
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动指标分析...")

	// 3. 读取并校验输入指标
	raw, err := os.ReadFile(flaginput)
	if err != nil {
		logger.Log.Fatalf("无法读取输入文件: %v", err)
	}
	var in domain.BiomarkerInput
	if err := json.Unmarshal(raw, &in); err != nil {
		logger.Log.Fatalf("输入文件解析失败: %v", err)
	}
	if err := in.Validate(); err != nil {
		logger.Log.Fatalf("输入指标非法: %v", err)
	}

	ctx := context.Background()

	// 4. 初始化推理客户端
	client, err := factory.NewClient(ctx, &cfg.Inference)
	if err != nil {
		logger.Log.Fatalf("推理客户端初始化失败: %v", err)
	}

	// 5. 执行分析（无数据库，不留档）
	uc := biz.NewReportUseCase(nil, client, &conf.Inference{
		Concurrency: &conf.Concurrency{
			Qps: int32(cfg.Concurrency.QPS),
			Rpm: int32(cfg.Concurrency.RPM),
		},
	}, klog.NewStdLogger(os.Stderr))

	report, err := uc.Analyze(ctx, "", &in)
	if err != nil {
		logger.Log.Fatalf("分析失败: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Log.Fatalf("结果序列化失败: %v", err)
	}
	fmt.Println(string(out))
	logger.Log.Info("✅ 分析完成")
}
