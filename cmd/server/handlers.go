package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ragserve/core"
	"github.com/ragserve/core/assemble"
	"github.com/ragserve/core/stream"
)

type handler struct {
	engine ragcore.Engine
}

func newHandler(e ragcore.Engine) *handler {
	return &handler{engine: e}
}

// POST /upload
// Accepts a multipart file upload and ingests it.
func (h *handler) handleUpload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Minute)
	defer cancel()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	// Sanitise filename to prevent path traversal.
	safeName := filepath.Base(header.Filename)

	tmpDir := os.TempDir()
	tmpPath := filepath.Join(tmpDir, safeName)
	dst, err := os.Create(tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process file"})
		slog.Error("creating temp file", "error", err)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		slog.Error("saving uploaded file", "error", err)
		return
	}
	dst.Close()
	defer os.Remove(tmpPath)

	var opts []ragcore.IngestOption
	if c.PostForm("force") != "" {
		opts = append(opts, ragcore.WithForceReparse())
	}
	if method := c.PostForm("parse_method"); method != "" {
		opts = append(opts, ragcore.WithParseMethod(method))
	}

	docID, err := h.engine.Ingest(ctx, tmpPath, opts...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion failed"})
		slog.Error("ingest error", "filename", safeName, "error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": docID,
		"filename":    safeName,
	})
}

// POST /query
func (h *handler) handleQuery(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	var req struct {
		Question     string `json:"question"`
		MaxResults   int    `json:"max_results,omitempty"`
		Filename     string `json:"filename,omitempty"`
		DomainFilter string `json:"domain_filter,omitempty"`
		Expand       bool   `json:"expand,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}

	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	// Bound parameters.
	if req.MaxResults < 0 || req.MaxResults > 100 {
		req.MaxResults = 0 // use default
	}

	var opts []ragcore.QueryOption
	if req.MaxResults > 0 {
		opts = append(opts, ragcore.WithMaxResults(req.MaxResults))
	}
	if req.Filename != "" {
		opts = append(opts, ragcore.WithFilename(req.Filename))
	}
	if req.DomainFilter != "" {
		opts = append(opts, ragcore.WithDomainFilter(req.DomainFilter))
	}
	if req.Expand {
		opts = append(opts, ragcore.WithExpand())
	}

	answer, err := h.engine.Query(ctx, req.Question, opts...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		slog.Error("query error", "question", req.Question, "error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":            answer.Text,
		"context":           answer.Context,
		"sources":           answer.Sources,
		"context_metadata":  gin.H{"chunks_used": len(answer.Sources)},
		"status":            answer.Status,
	})
}

// POST /query/stream
// Streams newline-delimited JSON frames produced by the C6-C11 pipeline.
func (h *handler) handleQueryStream(c *gin.Context) {
	var req struct {
		Question     string             `json:"question"`
		SessionID    string             `json:"session_id,omitempty"`
		History      []assemble.Message `json:"history,omitempty"`
		NResults     int                `json:"max_results,omitempty"`
		Filename     string             `json:"filename,omitempty"`
		DomainFilter string             `json:"domain_filter,omitempty"`
		Expand       bool               `json:"expand,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)
	flusher, canFlush := c.Writer.(http.Flusher)

	enc := json.NewEncoder(c.Writer)
	emit := func(f stream.Frame) error {
		if err := enc.Encode(f); err != nil {
			return err
		}
		if canFlush {
			flusher.Flush()
		}
		return nil
	}

	streamReq := ragcore.StreamQueryRequest{
		Question:     req.Question,
		SessionID:    req.SessionID,
		History:      req.History,
		NResults:     req.NResults,
		Filename:     req.Filename,
		DomainFilter: req.DomainFilter,
		Expand:       req.Expand,
	}

	if err := h.engine.QueryStream(c.Request.Context(), streamReq, emit); err != nil {
		slog.Error("query/stream error", "question", req.Question, "error", err)
		_ = emit(stream.Frame{Status: "error", Answer: "stream failed"})
	}
}

// GET /documents
func (h *handler) handleListDocuments(c *gin.Context) {
	docs, err := h.engine.ListDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		slog.Error("list documents error", "error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// DELETE /documents/:filename
func (h *handler) handleDeleteDocument(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required"})
		return
	}

	docs, err := h.engine.ListDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve document"})
		slog.Error("list documents error", "error", err)
		return
	}

	var docID int64
	found := false
	for _, d := range docs {
		if d.Filename == filename {
			docID = d.ID
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	if err := h.engine.Delete(c.Request.Context(), docID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		slog.Error("delete error", "filename", filename, "document_id", docID, "error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "filename": filename})
}

// GET /domains
func (h *handler) handleDomains(c *gin.Context) {
	domains, err := h.engine.Domains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list domains"})
		slog.Error("domains error", "error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"domains": domains})
}

// POST /reset_kb
func (h *handler) handleResetKB(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Minute)
	defer cancel()

	if err := h.engine.ResetKB(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		slog.Error("reset_kb error", "error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// GET /health
func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
