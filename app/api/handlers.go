package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/feed-ledger/app/cfg"
	"github.com/lysyi3m/feed-ledger/app/recorder"
	"github.com/lysyi3m/feed-ledger/app/store"
)

type Handler struct {
	outputPath string

	mu          sync.RWMutex
	lastSummary *recorder.Summary
}

func NewHandler(outputPath string) *Handler {
	return &Handler{outputPath: outputPath}
}

// SetSummary records the outcome of the most recent recording run.
func (h *Handler) SetSummary(summary *recorder.Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastSummary = summary
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   cfg.GetVersion(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) GetRecords(c *gin.Context) {
	records, err := store.Load(h.outputPath)
	if err != nil {
		slog.Error("Failed to load records", "path", h.outputPath, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if limit < len(records) {
			records = records[:limit]
		}
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetStats(c *gin.Context) {
	records, err := store.Load(h.outputPath)
	if err != nil {
		slog.Error("Failed to load records", "path", h.outputPath, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	h.mu.RLock()
	summary := h.lastSummary
	h.mu.RUnlock()

	stats := gin.H{
		"record_count": len(records),
		"output_path":  h.outputPath,
	}
	if summary != nil {
		stats["last_run"] = summary
	}

	c.JSON(http.StatusOK, stats)
}
