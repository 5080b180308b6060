package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sentinel-ds/internal/app"
	"sentinel-ds/internal/model"
	"sentinel-ds/internal/transport/http/response"
)

type LawHandler struct {
	ingestService *app.IngestService
}

type RefreshRequest struct {
	Names []string `json:"names"`
	Async bool     `json:"async"`
}

func NewLawHandler(ingestService *app.IngestService) *LawHandler {
	return &LawHandler{ingestService: ingestService}
}

func (h *LawHandler) List(c *gin.Context) {
	response.OK(c, h.ingestService.Catalog())
}

// Refresh re-fetches managed laws. With async it only enqueues a job;
// otherwise it runs the batch and returns the report.
func (h *LawHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
			return
		}
	}

	if req.Async {
		job, err := h.ingestService.EnqueueRefresh(c.Request.Context(), req.Names)
		if err != nil {
			writeServiceError(c, err, "enqueue refresh failed")
			return
		}
		response.Accepted(c, job)
		return
	}

	report, err := h.ingestService.Refresh(c.Request.Context(), req.Names, model.TriggerAPI)
	if err != nil {
		writeServiceError(c, err, "refresh failed")
		return
	}
	response.OK(c, report)
}

func (h *LawHandler) Runs(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}
	runs, err := h.ingestService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err, "list runs failed")
		return
	}
	response.OK(c, runs)
}
