package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// SchedulerService provisions the shared daily challenge ahead of time: once
// at boot for today, then every midnight for the new day.
type SchedulerService struct {
	context.DefaultService

	challengeSvc *ChallengeService

	scheduler gocron.Scheduler
}

const SCHEDULER_SVC = "scheduler_svc"

func (svc SchedulerService) Id() string {
	return SCHEDULER_SVC
}

func (svc *SchedulerService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SchedulerService) Start() error {
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	svc.scheduler = sched

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 30))),
		gocron.NewTask(svc.provisionDailyChallenge),
	)
	if err != nil {
		return err
	}

	sched.Start()

	// cover today immediately instead of waiting for the first tick
	svc.provisionDailyChallenge()
	return nil
}

func (svc *SchedulerService) provisionDailyChallenge() {
	challenge, err := svc.challengeSvc.EnsureDailyChallenge(time.Now())
	if err != nil {
		log.WithError(err).Error("failed to provision daily challenge")
		return
	}
	log.WithField("date", challenge.Date.Format("2006-01-02")).Debug("daily challenge ready")
}

func (svc *SchedulerService) Shutdown() {
	if svc.scheduler != nil {
		_ = svc.scheduler.Shutdown()
	}
}
