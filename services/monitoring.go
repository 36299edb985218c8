package services

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// MonitoringService exposes a Prometheus /metrics endpoint on its own port
// and records HTTP and progression metrics.
type MonitoringService struct {
	context.DefaultService

	registry *prometheus.Registry
	port     int

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	gamesRecorded        prometheus.Counter
	stagesCompleted      prometheus.Counter
	achievementsUnlocked prometheus.Counter
	levelUps             prometheus.Counter
	challengesCompleted  prometheus.Counter
	rewardsClaimed       prometheus.Counter
}

const MONITORING_SVC = "monitoring_svc"

func (svc MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *context.Context) error {
	svc.port = 9090
	if v := os.Getenv("PROMETHEUS_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PROMETHEUS_PORT: %w", err)
		}
		svc.port = p
	}

	svc.registry = prometheus.NewRegistry()
	svc.registerMetrics()

	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) registerMetrics() {
	svc.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	svc.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	svc.gamesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "progress_games_recorded_total",
		Help: "Total number of played games recorded",
	})

	svc.stagesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "progress_stages_completed_total",
		Help: "Total number of stage completions recorded",
	})

	svc.achievementsUnlocked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "progress_achievements_unlocked_total",
		Help: "Total number of achievements unlocked",
	})

	svc.levelUps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "progress_level_ups_total",
		Help: "Total number of level-ups",
	})

	svc.challengesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "challenge_completed_total",
		Help: "Total number of daily challenges completed",
	})

	svc.rewardsClaimed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "challenge_rewards_claimed_total",
		Help: "Total number of daily challenge reward claims",
	})

	svc.registry.MustRegister(
		svc.httpRequestsTotal,
		svc.httpRequestDuration,
		svc.gamesRecorded,
		svc.stagesCompleted,
		svc.achievementsUnlocked,
		svc.levelUps,
		svc.challengesCompleted,
		svc.rewardsClaimed,
	)
}

func (svc *MonitoringService) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(svc.registry, promhttp.HandlerOpts{}))

	go func() {
		addr := fmt.Sprintf(":%d", svc.port)
		log.Infof("Prometheus metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Error("metrics server stopped")
		}
	}()

	return nil
}

// HTTPMiddleware records request counts and latency per route.
func (svc *MonitoringService) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		svc.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		svc.httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

func (svc *MonitoringService) GameRecorded()       { svc.gamesRecorded.Inc() }
func (svc *MonitoringService) StageCompleted()     { svc.stagesCompleted.Inc() }
func (svc *MonitoringService) LevelUp()            { svc.levelUps.Inc() }
func (svc *MonitoringService) ChallengeCompleted() { svc.challengesCompleted.Inc() }
func (svc *MonitoringService) RewardsClaimed()     { svc.rewardsClaimed.Inc() }

func (svc *MonitoringService) AchievementsUnlocked(n int) {
	if n > 0 {
		svc.achievementsUnlocked.Add(float64(n))
	}
}
