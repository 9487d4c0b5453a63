package pipeline

import (
	"context"
	"log/slog"
)

// Worker processes queued ranking jobs.
type Worker struct {
	proc *Processor
	log  *slog.Logger
}

func NewWorker(proc *Processor, log *slog.Logger) *Worker {
	return &Worker{proc: proc, log: log}
}

// Process runs the ranking pipeline for one job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	job.SetStatus(StatusExtracting, "extracting")
	result, err := w.proc.RankCollection(ctx, job.Files(), job.Persona, job.Task, func(phase string, done, total int) {
		if phase == "scoring" {
			job.SetStatus(StatusScoring, "scoring")
		}
		job.SetProgress(phase, done, total)
	})
	if err != nil {
		log.Error("ranking failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "scoring")
		return
	}

	job.SetResult(result)
	job.SetStatus(StatusCompleted, "done")
	log.Info("ranking complete",
		"documents", len(result.Metadata.Documents),
		"sections", len(result.ExtractedSections),
	)
}
