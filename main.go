package main

import (
	"context"

	"booklet-show/biz/infrastructure/util/log"
	"booklet-show/provider"

	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/zeromicro/go-zero/core/threading"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
)

func main() {
	provider.Init()
	p := provider.Get()

	otel.SetTextMapPropagator(b3.New())
	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(
		server.WithHostPorts(p.Config.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(":9091", "/metrics")),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(cfg))

	// 出站推送与周期同步常驻 启动同步不阻塞服务就绪
	p.SyncService.StartOutbox()
	p.SyncService.StartAutoSync()
	threading.GoSafe(func() {
		ctx := context.Background()
		if err := p.TransferService.CheckAndSeed(ctx); err != nil {
			log.Error("seed check fail, err=%v", err)
		}
		report := p.SyncService.SyncAll(ctx)
		log.Info("startup sync done, success=%v", report.Success)
	})

	customizedRegister(h)
	h.Spin()
}
