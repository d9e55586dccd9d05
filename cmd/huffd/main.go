package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/chronos-tachyon/canonhuff/internal/config"
	"github.com/chronos-tachyon/canonhuff/internal/handler"
	"github.com/chronos-tachyon/canonhuff/internal/router"
	"github.com/chronos-tachyon/canonhuff/internal/service"
	"github.com/chronos-tachyon/canonhuff/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	logg := logger.New(os.Stderr, cfg.Debug)

	codecSvc := service.NewCodecService(logg)
	codecH := handler.NewCodecHandler(codecSvc, cfg.MaxBodyBytes)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	router.Register(r, router.Dependencies{
		CodecHandler: codecH,
	})

	logg.Infof("starting server at %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
