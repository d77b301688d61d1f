package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/training"
)

type Trainer interface {
	Start(ctx context.Context, source training.Source) (*training.Run, error)
	Latest(ctx context.Context) (*training.Run, error)
}

type TrainingHandler struct {
	trainer Trainer
}

func NewTrainingHandler(trainer Trainer) *TrainingHandler {
	return &TrainingHandler{trainer: trainer}
}

// StartTraining handles POST /forecasts/train. Training runs in the
// background; poll /forecasts/runs/latest for progress.
func (h *TrainingHandler) StartTraining(c *gin.Context) {
	run, err := h.trainer.Start(c.Request.Context(), training.SourceManual)
	if err != nil {
		respondError(c, err, "failed to start training run")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": "training started",
		"run":     run,
	})
}

func (h *TrainingHandler) GetLatestRun(c *gin.Context) {
	run, err := h.trainer.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch training run")
		return
	}
	c.JSON(http.StatusOK, run)
}
