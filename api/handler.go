package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nuid"
	"go.uber.org/zap"

	"trade-reconciler/internal/catalog"
	"trade-reconciler/internal/engine"
)

// maxSearchResults matches the chat bot's behavior: show the first five
// matches and report how many more there are.
const maxSearchResults = 5

type Handler struct {
	reconciler *engine.Reconciler
	pool       *engine.WorkerPool
	catalog    *catalog.Service
	logger     *zap.Logger
}

func NewHandler(reconciler *engine.Reconciler, pool *engine.WorkerPool, catalog *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{
		reconciler: reconciler,
		pool:       pool,
		catalog:    catalog,
		logger:     logger,
	}
}

// Reconcile Handlers

// Reconcile runs one reconciliation synchronously and returns the report
// chunks plus the raw ledger.
func (h *Handler) Reconcile(c *gin.Context) {
	lines, params, ok := h.readTranscript(c)
	if !ok {
		return
	}

	result := h.reconciler.Run(lines, params)
	c.JSON(http.StatusOK, result)
}

// ReconcileAsync enqueues the run on the worker pool; report chunks are
// published to NATS under reports.<job_id> and can be consumed through the
// websocket gateway.
func (h *Handler) ReconcileAsync(c *gin.Context) {
	lines, params, ok := h.readTranscript(c)
	if !ok {
		return
	}

	job := engine.Job{
		ID:     nuid.Next(),
		Lines:  lines,
		Params: params,
	}
	if !h.pool.Submit(job) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reconcile queue is full"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "topic": "reports." + job.ID})
}

// readTranscript accepts either a JSON body {transcript, params} or a
// multipart form with a "transcript" text file and a "params" field.
func (h *Handler) readTranscript(c *gin.Context) ([]string, string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("transcript")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing transcript file"})
			return nil, "", false
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable transcript file"})
			return nil, "", false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable transcript file"})
			return nil, "", false
		}
		return TranscriptLines(string(data)), c.PostForm("params"), true
	}

	var req struct {
		Transcript string `json:"transcript" binding:"required"`
		Params     string `json:"params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, "", false
	}
	return TranscriptLines(req.Transcript), req.Params, true
}

// TranscriptLines splits raw transcript text into lines, tolerating
// Windows line endings (game logs are usually saved on Windows).
func TranscriptLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// Catalog Handlers

func (h *Handler) SearchItems(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	results := h.catalog.Search(query)

	shown := results
	if len(shown) > maxSearchResults {
		shown = shown[:maxSearchResults]
	}
	cards := make([]string, 0, len(shown))
	for _, item := range shown {
		cards = append(cards, catalog.FormatShort(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"results": cards,
		"total":   len(results),
	})
}

func (h *Handler) RefreshCatalog(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("catalog refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog refresh failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "catalog refreshed"})
}
