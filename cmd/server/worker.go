package main

import (
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/config"
	"github.com/mafgems/api/internal/generation"
	"github.com/mafgems/api/internal/logger"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/internal/repository"
	"github.com/mafgems/api/internal/service"
	ws "github.com/mafgems/api/internal/websocket"
	"github.com/mafgems/api/internal/worker"
)

func newWorkerServer(cfg *config.Config, redisOpt asynq.RedisClientOpt, log zerolog.Logger) *asynq.Server {
	asynqLogLevel := asynq.InfoLevel
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug":
		asynqLogLevel = asynq.DebugLevel
	case "warn":
		asynqLogLevel = asynq.WarnLevel
	case "error":
		asynqLogLevel = asynq.ErrorLevel
	}

	return asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			service.QueueVideo: 1,
		},
		Logger:   asynqLogger{log: logger.Component(log, "asynq")},
		LogLevel: asynqLogLevel,
	})
}

func newWorkerMux(
	cfg *config.Config,
	videoService *service.JewelryVideoService,
	provider *client.NewBlackClient,
	videos repository.VideoStore,
	hub *ws.Hub,
	log zerolog.Logger,
	m *metrics.Metrics,
) *asynq.ServeMux {
	videoWorker := worker.NewJewelryVideoWorker(videoService, provider, videos, hub,
		worker.WithPollPolicy(generation.PollPolicy{MaxAttempts: cfg.NewBlack.PollAttempts, Delay: cfg.NewBlack.PollInterval}),
		worker.WithResultsEndpoint(cfg.NewBlack.ResultsEndpoint),
		worker.WithLogger(logger.Component(log, "worker")),
		worker.WithMetrics(m),
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeJewelryVideo, videoWorker.ProcessTask)
	return mux
}

func runWorkerServer(srv *asynq.Server, mux *asynq.ServeMux, log zerolog.Logger) {
	if err := srv.Start(mux); err != nil {
		log.Error().Err(err).Msg("Asynq worker error")
	}
}

// asynqLogger routes asynq's logs through zerolog
type asynqLogger struct {
	log zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
