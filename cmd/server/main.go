package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/app"
	"github.com/shrimpsizemoose/pluggbulle/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	mux := http.NewServeMux()
	handlers.Register(mux, handlers.NewStudentHandler(service))
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting pluggbulle server on %s", service.Config.Server.Port)
	logger.Debug.Println("Requiring headers:")
	for _, h := range service.Config.API.RequiredHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if service.Difficulty != nil {
		logger.Info.Printf("Difficulty hints from %s", service.Config.Difficulty.URL)
	}
	if err := http.ListenAndServe(service.Config.Server.Port, mux); err != nil {
		logger.Error.Fatalf("Pluggbulle server failed: %v", err)
	}
}
