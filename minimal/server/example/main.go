package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/kianooshaz/http-from-tcp/minimal/config"
	"github.com/kianooshaz/http-from-tcp/minimal/server"
)

const indexPage = `<!doctype html>
<html>
<head><title>Home</title><link rel="stylesheet" href="/style.css"></head>
<body><h1>Hello World!</h1><a href="/gallery">Gallery</a></body>
</html>`

const galleryPage = `<!doctype html>
<html>
<head><title>Gallery</title></head>
<body><h1>Gallery</h1><img src="/img/cat.jpg"></body>
</html>`

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	app := server.New(
		server.WithReadBufferSize(cfg.ReadBuffer),
		server.WithReadTimeout(cfg.ReadTimeout),
	)
	app.Use(server.Static(cfg.Dir))

	app.Get("/", func(req *server.Request, res *server.Response) {
		logSendError(res.SendString(indexPage))
	})
	app.Get("/gallery", func(req *server.Request, res *server.Response) {
		logSendError(res.SendString(galleryPage))
	})
	app.Get("/old-gallery", func(req *server.Request, res *server.Response) {
		logSendError(res.Redirect("/gallery"))
	})
	app.Get("/health", func(req *server.Request, res *server.Response) {
		logSendError(res.Set("Content-Type", "text/plain").SendString("ok"))
	})

	go func() {
		slog.Info("Starting web server", "addr", "http://"+cfg.Addr(), "dir", cfg.Dir)
		if err := app.Listen(cfg.Port, cfg.Host); err != nil && !errors.Is(err, server.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	gracefulShutdown(app)
}

func gracefulShutdown(app *server.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	<-quit
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
}

func logSendError(err error) {
	if err != nil {
		slog.Error(fmt.Sprintf("http error: %s", err))
	}
}
