package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miniview/internal/cfg"
	"miniview/internal/initdata"
	"miniview/internal/logx"
	"miniview/internal/tg"
	"miniview/internal/web"
)

func main() {
	config := cfg.Load()
	logx.Setup(config.LogLevel)
	log.Printf("miniview starting | dev=%v", config.DevMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	verifier := initdata.New(config.TgToken)
	if config.MaxAgeSeconds > 0 {
		verifier.MaxAge = time.Duration(config.MaxAgeSeconds) * time.Second
	}
	if config.FutureSkewSeconds > 0 {
		verifier.FutureSkew = time.Duration(config.FutureSkewSeconds) * time.Second
	}
	if config.MaxInitDataBytes > 0 {
		verifier.MaxLen = config.MaxInitDataBytes
	}

	wsrv := web.NewServer(verifier, config.WebAddr, config.DevMode)
	go func() {
		if err := wsrv.Serve(); err != nil {
			log.Printf("web server stopped: %v", err)
		}
	}()
	defer wsrv.Stop()

	bot := tg.NewBot(config.TgToken, config.WebAppURL)
	go func() {
		if err := bot.Run(ctx); err != nil {
			log.Printf("telegram bot stopped: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown")
	cancel()
	time.Sleep(300 * time.Millisecond)
}
