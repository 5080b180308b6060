package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"sentinel-ds/internal/app"
	"sentinel-ds/internal/transport/http/response"
)

type DocumentHandler struct {
	documentService *app.DocumentService
	ingestService   *app.IngestService
	maxUploadBytes  int64
}

func NewDocumentHandler(documentService *app.DocumentService, ingestService *app.IngestService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		ingestService:   ingestService,
		maxUploadBytes:  maxUploadBytes,
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		writeServiceError(c, err, "list documents failed")
		return
	}
	response.OK(c, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	detail, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "get document failed")
		return
	}
	response.OK(c, detail)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "delete document failed")
		return
	}
	response.OK(c, gin.H{"deleted": id})
}

// Upload accepts a multipart form with "file" (PDF), "name" and "category".
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge,
			"file too large (max "+formatMB(h.maxUploadBytes)+")")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	result, err := h.ingestService.IngestFile(c.Request.Context(), app.FileInput{
		Name:     name,
		Category: strings.TrimSpace(c.PostForm("category")),
		Filename: filepath.Base(file.Filename),
		Data:     data,
	})
	if err != nil {
		writeServiceError(c, err, "ingest failed")
		return
	}
	response.OK(c, result)
}

func formatMB(n int64) string {
	return fmt.Sprintf("%dMB", n>>20)
}
