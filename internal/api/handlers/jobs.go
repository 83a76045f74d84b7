package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/services/jobs"
	"github.com/recapio/recapio/internal/utils"
)

type JobHandler struct {
	jobs *jobs.Service
}

func NewJobHandler(jobService *jobs.Service) *JobHandler {
	return &JobHandler{jobs: jobService}
}

// CreateJob godoc
// @Summary Submit a video for dubbing
// @Description Validate the URL, debit one credit and queue the video for dubbing. A resubmission of the same video and language conflicts with the existing job.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body models.CreateJobRequest true "Video URL and dubbing options"
// @Success 202 {object} models.CreateJobResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 402 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/jobs [post]
// @Security BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := currentUserID(c)
	if !ok {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	response, err := h.jobs.CreateJob(ctx, userID, &req)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			errorResponse(c, appErr)
		} else {
			utils.LogError(ctx, "Failed to create job", err)
			errorResponse(c, utils.NewInternalError())
		}
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// ListJobs godoc
// @Summary List the caller's jobs
// @Description Retrieve the caller's dubbing jobs, newest first. Admins see all jobs.
// @Tags jobs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param sort query string false "Sort order" Enums(created_at_desc, created_at_asc)
// @Success 200 {object} models.JobListResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/jobs [get]
// @Security BearerAuth
func (h *JobHandler) ListJobs(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := currentUserID(c)
	if !ok {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	filter := &userID
	if isAdmin(c) {
		filter = nil
	}

	response, err := h.jobs.ListJobs(ctx, filter, paginationFromQuery(c))
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			errorResponse(c, appErr)
		} else {
			utils.LogError(ctx, "Failed to list jobs", err)
			errorResponse(c, utils.NewInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetJob godoc
// @Summary Get job details
// @Description Retrieve the current state of one dubbing job
// @Tags jobs
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} models.VideoJob
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/jobs/{job_id} [get]
// @Security BearerAuth
func (h *JobHandler) GetJob(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := currentUserID(c)
	if !ok {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	job, err := h.jobs.GetJob(ctx, userID, c.Param("job_id"), isAdmin(c))
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			errorResponse(c, appErr)
		} else {
			utils.LogError(ctx, "Failed to get job", err)
			errorResponse(c, utils.NewInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetJobResult godoc
// @Summary Get a download link for a completed job
// @Description Generate a time-limited presigned URL for the dubbed video
// @Tags jobs
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} models.JobResultResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/jobs/{job_id}/result [get]
// @Security BearerAuth
func (h *JobHandler) GetJobResult(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := currentUserID(c)
	if !ok {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	result, err := h.jobs.GetResultURL(ctx, userID, c.Param("job_id"), isAdmin(c))
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			errorResponse(c, appErr)
		} else {
			utils.LogError(ctx, "Failed to get job result", err)
			errorResponse(c, utils.NewInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
