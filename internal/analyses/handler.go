package analyses

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/ingest"
	"prep-backend/internal/readiness"
	"prep-backend/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
	// CreateLimit, when set, guards the endpoints that create analyses.
	CreateLimit gin.HandlerFunc
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	create := []gin.HandlerFunc{}
	if h.CreateLimit != nil {
		create = append(create, h.CreateLimit)
	}
	rg.GET("/taxonomy", h.getTaxonomy)
	rg.GET("/company-intel", h.getCompanyIntel)
	rg.POST("/analyses", append(create, h.createAnalysis)...)
	rg.POST("/analyses/upload", append(create, h.uploadAnalysis)...)
	rg.POST("/analyses/from-url", append(create, h.analyzeURL)...)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/latest", h.getLatest)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.PATCH("/analyses/:id/confidence", h.updateConfidence)
	rg.DELETE("/analyses/:id", h.deleteAnalysis)
	rg.DELETE("/analyses", h.clearAnalyses)
}

type urlRequest struct {
	URL     string `json:"url"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

type confidenceRequest struct {
	Skills map[string]readiness.Confidence `json:"skills"`
}

func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if id := c.GetString("requestId"); id != "" {
		ctx = WithRequestID(ctx, id)
	}
	return ctx
}

func (h *Handler) createAnalysis(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}
	result, err := h.Svc.Analyze(requestContext(c), req)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}
	respond.Created(c, result)
}

func (h *Handler) uploadAnalysis(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", []map[string]string{
			{"field": "file", "issue": "required"},
		})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "failed to read file", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "failed to read file", nil)
		return
	}

	result, err := h.Svc.AnalyzeDocument(requestContext(c),
		c.PostForm("company"),
		c.PostForm("role"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}
	respond.Created(c, result)
}

func (h *Handler) analyzeURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}
	result, err := h.Svc.AnalyzeURL(requestContext(c), req.Company, req.Role, req.URL)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}
	respond.Created(c, result)
}

func (h *Handler) writeCreateError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var fetchErr *ingest.FetchError
	switch {
	case errors.As(err, &validationErr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, validationErr.Error(), []map[string]string{
			{"field": validationErr.Field, "issue": validationErr.Issue},
		})
	case errors.Is(err, ingest.ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "supported types are PDF, DOCX, HTML and plain text", nil)
	case errors.Is(err, ingest.ErrEmptyText):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeValidation, "no text could be extracted", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusGatewayTimeout, "timeout", "request timed out", nil)
	case errors.As(err, &fetchErr):
		if fetchErr.Message == "invalid URL" {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "url must be an absolute http(s) URL", nil)
			return
		}
		if errors.Is(err, ingest.ErrBlockedAddress) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "url must point to a public host", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "fetch_failed", "failed to fetch job posting", gin.H{"status": fetchErr.StatusCode})
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze job description", nil)
	}
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, err := h.Svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err, "failed to fetch analysis")
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) getLatest(c *gin.Context) {
	consume := c.Query("consume") == "true"
	analysis, ok := h.Svc.Latest(consume)
	if !ok {
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "no recent analysis", nil)
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := DefaultHistoryLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.Svc.List(requestContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list analyses", nil)
		return
	}
	resp := make([]Summary, 0, len(analyses))
	for _, a := range analyses {
		resp = append(resp, Summarize(a))
	}
	respond.OK(c, resp)
}

func (h *Handler) updateConfidence(c *gin.Context) {
	var req confidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Skills) == 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "skills map is required", nil)
		return
	}
	analysis, err := h.Svc.UpdateConfidence(requestContext(c), c.Param("id"), req.Skills)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, validationErr.Error(), nil)
			return
		}
		h.writeLookupError(c, err, "failed to update confidence")
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) deleteAnalysis(c *gin.Context) {
	if err := h.Svc.Delete(requestContext(c), c.Param("id")); err != nil {
		h.writeLookupError(c, err, "failed to delete analysis")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) clearAnalyses(c *gin.Context) {
	if err := h.Svc.Clear(requestContext(c)); err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to clear history", nil)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) getTaxonomy(c *gin.Context) {
	taxonomy := h.Svc.Taxonomy()
	resp := make([]gin.H, 0, len(taxonomy.Categories()))
	for _, cat := range taxonomy.Categories() {
		resp = append(resp, gin.H{
			"category": cat,
			"label":    taxonomy.Label(cat),
			"skills":   taxonomy.Skills(cat),
		})
	}
	respond.OK(c, resp)
}

func (h *Handler) getCompanyIntel(c *gin.Context) {
	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		respond.OK(c, nil)
		return
	}
	respond.OK(c, h.Svc.CompanyIntel(name))
}

func (h *Handler) writeLookupError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, message, nil)
}
