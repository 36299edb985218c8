package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brainwave-labs/quest_api/engine"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/services/repositories"
)

// testStack wires the progress and challenge services onto a throwaway
// sqlite database, without the service container or network clients.
type testStack struct {
	db           *gorm.DB
	progressSvc  *ProgressService
	challengeSvc *ChallengeService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "svc.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.ProgressSnapshot{},
		&model.ProcessedEvent{},
		&model.Achievement{},
		&model.ChallengeTemplate{},
		&model.DailyChallenge{},
		&model.UserChallenge{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlSvc := &SqlService{db: db}

	monitoringSvc := &MonitoringService{registry: prometheus.NewRegistry()}
	monitoringSvc.registerMetrics()

	achievementSvc := &AchievementService{
		sqlSvc: sqlSvc,
		// no client configured; cache lookups miss and fall through to the DB
		redisSvc:        &RedisService{},
		achievementRepo: repositories.NewAchievementRepository(db),
		progressRepo:    repositories.NewProgressRepository(db),
	}

	progressSvc := &ProgressService{
		sqlSvc:         sqlSvc,
		achievementSvc: achievementSvc,
		monitoringSvc:  monitoringSvc,
		progressRepo:   repositories.NewProgressRepository(db),
		clock:          engine.NewSystemClock(time.UTC),
	}

	challengeSvc := &ChallengeService{
		sqlSvc:        sqlSvc,
		progressSvc:   progressSvc,
		monitoringSvc: monitoringSvc,
		challengeRepo: repositories.NewChallengeRepository(db),
		clock:         engine.NewSystemClock(time.UTC),
	}

	return &testStack{db: db, progressSvc: progressSvc, challengeSvc: challengeSvc}
}
