package ingest

import (
	"context"
	"errors"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/shelf"

	"github.com/sirupsen/logrus"
)

type Service struct {
	source catalog.Source
	log    logrus.FieldLogger
}

func NewService(source catalog.Source, log logrus.FieldLogger) *Service {
	return &Service{source: source, log: log}
}

// Run fetches every record from the source and adds the valid ones to s in
// order. Invalid records are reported on the run and skipped. Running out of
// shelf space ends the run early without an error.
func (svc *Service) Run(ctx context.Context, s *shelf.Shelf) (run *Run, err error) {
	run = &Run{
		Source:    svc.source.Name(),
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	log := svc.log.WithField("source", run.Source)

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else if run.Status == StatusRunning {
			run.Status = StatusCompleted
		}
		log.WithFields(logrus.Fields{
			"status":      run.Status,
			"fetched":     run.Fetched,
			"added":       run.Added,
			"rejected":    len(run.Rejected),
			"skipped":     run.Skipped,
			"duration_ms": now.Sub(run.StartedAt).Milliseconds(),
		}).Info("ingest finished")
	}()

	records, err := svc.source.Fetch(ctx)
	if err != nil {
		return run, err
	}
	run.Fetched = len(records)

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		if errs := r.Validate(); len(errs) > 0 {
			run.Rejected = append(run.Rejected, Rejected{Record: r, Errors: errs})
			log.WithFields(logrus.Fields{
				"title":  r.Title,
				"errors": errs,
			}).Warn("rejected book record")
			continue
		}

		b, err := r.Book()
		if err != nil {
			return run, err
		}

		if err := s.Add(b); err != nil {
			if errors.Is(err, shelf.ErrCapacityReached) {
				run.Status = StatusCapacityReached
				run.Skipped = countValid(records[i:])
				log.WithError(err).Warn("shelf is full, stopping ingest")
				return run, nil
			}
			return run, err
		}
		run.Added++
	}
	return run, nil
}

func countValid(records []catalog.Record) int {
	n := 0
	for _, r := range records {
		if len(r.Validate()) == 0 {
			n++
		}
	}
	return n
}
