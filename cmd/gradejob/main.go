package main

import (
	"flag"
	"time"

	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/queue"
)

// 手动触发一次会员等级重算任务。
// 未指定令牌时使用当前周期令牌，与调度任务在同一周期内互为幂等。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	var token string
	flag.StringVar(&token, "token", "", "运行令牌（默认当前周期）")
	flag.Parse()

	if token == "" {
		token = queue.PeriodToken(time.Now())
	}

	client, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		stdLog.Fatalf("队列客户端初始化失败: %v", err)
	}
	defer client.Close()
	if !client.Enabled() {
		stdLog.Fatalf("队列未启用，请在配置中开启 queue.enabled")
	}

	if err := client.EnqueueGradeRecalculate(queue.GradeRecalculatePayload{Token: token}); err != nil {
		stdLog.Fatalf("任务推送失败: %v", err)
	}
	stdLog.Printf("已推送等级重算任务: token=%s", token)
}
