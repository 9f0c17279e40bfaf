package cron

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Scheduler wraps gocron with logging and panic recovery around each job run.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zap.SugaredLogger
	jobs      []Job
}

// Job is a named task with a cron schedule.
type Job struct {
	Name     string
	Schedule string
	Task     func()
	JobID    string
}

func NewScheduler(logger *zap.SugaredLogger, timezone string) *Scheduler {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warnf("Failed to load timezone %s, using UTC: %v", timezone, err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
		gocron.WithLogger(gocron.NewLogger(gocron.LogLevelInfo)),
	)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger,
		jobs:      make([]Job, 0),
	}
}

// Start registers all added jobs and begins the scheduler.
func (s *Scheduler) Start() {
	s.registerJobs()
	s.scheduler.Start()
	s.logger.Info("Scheduler started")
}

func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() {
	for i, job := range s.jobs {
		s.logger.Infof("Registering job: %s with schedule %s", job.Name, job.Schedule)

		task := func() {
			s.logger.Infof("Executing job: %s", job.Name)
			startTime := time.Now()

			defer func() {
				if r := recover(); r != nil {
					s.logger.Errorf("Job %s panicked: %v", job.Name, r)
				}
			}()

			job.Task()

			s.logger.Infof("Job %s completed in %v", job.Name, time.Since(startTime))
		}

		j, err := s.scheduler.NewJob(
			gocron.CronJob(job.Schedule, false),
			gocron.NewTask(task),
			gocron.WithName(job.Name),
		)
		if err != nil {
			s.logger.Errorf("Failed to schedule job %s: %v", job.Name, err)
			continue
		}

		s.jobs[i].JobID = j.ID().String()
	}
}

// Custom adds a job with a raw cron expression.
func (s *Scheduler) Custom(name string, schedule string, task func()) {
	s.jobs = append(s.jobs, Job{
		Name:     name,
		Schedule: schedule,
		Task:     task,
	})
}

// GetJobs returns all registered jobs.
func (s *Scheduler) GetJobs() []Job {
	return s.jobs
}

// RunJobByName finds a job by name and runs it immediately.
func (s *Scheduler) RunJobByName(name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			go job.Task()
			return nil
		}
	}
	return fmt.Errorf("job not found: %s", name)
}
