package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"letsdraw/internal/api"
	"letsdraw/internal/cluster"
	"letsdraw/internal/config"
	"letsdraw/internal/events"
	"letsdraw/internal/game"
	"letsdraw/internal/network"
	"letsdraw/internal/session"
)

func main() {
	// 1. CARREGA A CONFIGURAÇÃO
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := config.SetupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("failed to set up logger: %v", err)
	}
	log := logrus.WithField("component", "main")
	log.WithFields(logrus.Fields{
		"port":          cfg.Port,
		"round_seconds": cfg.Rules.RoundSeconds,
		"max_rounds":    cfg.Rules.MaxRounds,
		"nats":          cfg.NATSURL != "",
		"consul":        cfg.ConsulAddr != "",
	}).Info("config loaded")

	// 2. REDE E LÓGICA DO JOGO
	handler := session.NewGameHandler()
	server := network.NewServer(handler, network.Options{
		MessagesPerSecond: cfg.ClientRate,
		Burst:             cfg.ClientBurst,
	})

	var gateway game.Gateway = server.Hub()
	nc := connectEvents(cfg, log)
	if nc != nil {
		gateway = events.NewMirror(gateway, nc, cfg.NATSSubjectPrefix)
	}

	coordinator := game.NewCoordinator(game.NewTable(), gateway, game.WithRules(cfg.Rules))
	handler.Attach(coordinator, server.Hub())

	hubCtx, stopHub := context.WithCancel(context.Background())
	go server.Run(hubCtx)

	// 3. HEALTH CHECK E ROTAS HTTP
	health := cluster.NewHealthAggregator()
	health.AddCheck("hub", func() error {
		if !server.Hub().Running() {
			return errors.New("hub stopped")
		}
		return nil
	})
	if nc != nil {
		health.AddCheck("nats", func() error {
			if !nc.IsConnected() {
				return errors.New("nats " + nc.Status().String())
			}
			return nil
		})
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Rooms:       coordinator,
		Connections: server.Hub().ClientCount,
		Health:      health.Handler(),
		WebSocket:   server.ServeWS,
		StaticDir:   cfg.StaticDir,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", httpServer.Addr).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	// 4. REGISTRA O SERVIÇO NO CONSUL
	agent := registerService(cfg, log)
	if agent != nil {
		health.AddCheck("consul", agent.Check)
	}

	// 5. ESPERA O SINAL DE DESLIGAMENTO
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	if agent != nil {
		if err := agent.Leave(); err != nil {
			log.WithError(err).Warn("consul deregistration failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown failed")
	}
	stopHub()
	events.Close(nc)
	log.Info("bye")
}

// connectEvents liga o espelho de eventos. Sem NATS o servidor segue sem ele.
func connectEvents(cfg *config.Config, log *logrus.Entry) *nats.Conn {
	if cfg.NATSURL == "" {
		return nil
	}
	nc, err := events.Connect(cfg.NATSURL, cfg.ServiceName)
	if err != nil {
		log.WithError(err).Warn("running without event mirror")
		return nil
	}
	return nc
}

func registerService(cfg *config.Config, log *logrus.Entry) *cluster.Agent {
	if cfg.ConsulAddr == "" {
		return nil
	}
	agent, err := cluster.Join(cfg.ConsulAddr, cluster.Registration{
		Name: cfg.ServiceName,
		Port: cfg.Port,
		Tags: []string{"websocket", "letsdraw"},
	})
	if err != nil {
		log.WithError(err).Warn("running without consul")
		return nil
	}
	return agent
}
