package handler

import (
	"context"
	"net/http"

	"github.com/midwestsb/autobooks/internal/pipeline"
	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// PipelineRunner triggers classification passes.
type PipelineRunner interface {
	Run(ctx context.Context) (pipeline.Summary, error)
	Retry(ctx context.Context) (pipeline.Summary, error)
}

// JobsHandler exposes on-demand pipeline triggers for back-office tooling.
// Progress is observed over the Redis channel, not this API.
type JobsHandler struct {
	runner PipelineRunner
	logger *logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(runner PipelineRunner, log *logger.Logger) *JobsHandler {
	return &JobsHandler{
		runner: runner,
		logger: log.WithField("handler", "jobs"),
	}
}

// JobResponse reports an accepted pipeline run.
type JobResponse struct {
	Status string `json:"status"`
}

// TriggerClassify handles POST /api/v1/jobs/classify
// Starts a pass over Pending transactions in the background.
func (h *JobsHandler) TriggerClassify(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, "classify", h.runner.Run)
}

// TriggerRetry handles POST /api/v1/jobs/retry
// Starts a pass over Error transactions in the background.
func (h *JobsHandler) TriggerRetry(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, "retry", h.runner.Retry)
}

func (h *JobsHandler) trigger(w http.ResponseWriter, r *http.Request, name string, pass func(context.Context) (pipeline.Summary, error)) {
	// The pass outlives the request; progress streams over Redis.
	ctx := context.WithoutCancel(r.Context())
	log := h.logger.WithContext(r.Context()).WithField("job", name)

	go func() {
		sum, err := pass(ctx)
		if err != nil {
			if apperrors.HasCode(err, apperrors.ErrCodeValidation) {
				log.Warn("pass not started", "reason", err.Error())
				return
			}
			log.WithError(err).Error("pass failed")
			return
		}
		log.Info("pass finished",
			"scanned", sum.Scanned,
			"posted", sum.Posted,
			"failed", sum.Failed,
			"skipped", sum.Skipped)
	}()

	respondJSON(w, JobResponse{Status: "started"}, http.StatusAccepted)
}
