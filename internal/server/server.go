// Package server exposes the classification and fact-checking pipeline over
// HTTP. Batches complete with HTTP 200; per-item failures are reported in
// the item results, never as transport errors.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/worker"
)

// Server wires the HTTP routes to the news-item processor
type Server struct {
	processor  *worker.Processor
	uploadDir  string
	resultsDir string
	maxUpload  int64
	engine     *gin.Engine
}

// New creates the HTTP server
func New(cfg config.ServerConfig, processor *worker.Processor) *Server {
	s := &Server{
		processor:  processor,
		uploadDir:  cfg.UploadDir,
		resultsDir: cfg.ResultsDir,
		maxUpload:  cfg.MaxUploadSize,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", s.handleHealth)
	engine.POST("/categorize", s.handleCategorize)
	engine.POST("/upload", s.handleUpload)
	engine.GET("/results/:filename", s.handleGetResults)
	engine.GET("/list-results", s.handleListResults)

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts serving on addr and blocks
func (s *Server) Run(addr string) error {
	for _, dir := range []string{s.uploadDir, s.resultsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	log.Printf("server: listening on %s", addr)
	return s.engine.Run(addr)
}

// batchResponse is the aggregate result for one request
type batchResponse struct {
	UploadedFile   string               `json:"uploaded_file,omitempty"`
	ProcessedCount int                  `json:"processed_count"`
	Results        []*worker.ItemResult `json:"results"`
	Status         string               `json:"status"`
	Timestamp      string               `json:"timestamp"`
	ResultsFile    string               `json:"results_file,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"message":   "News categorization and fact-checking API is running",
		"timestamp": time.Now().Format(time.RFC3339),
		"endpoints": []string{"/health", "/categorize", "/upload", "/results/<filename>", "/list-results"},
	})
}

func (s *Server) handleCategorize(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.maxUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body", "status": "failed"})
		return
	}

	items, err := decodeItems(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "status": "failed"})
		return
	}

	resp := s.process(c, items, "categorization_results")
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded", "status": "failed"})
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(header.Filename, ".json") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JSON files are accepted", "status": "failed"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file", "status": "failed"})
		return
	}

	savedName := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(header.Filename))
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		log.Printf("server: failed to create upload dir: %v", err)
	} else if err := os.WriteFile(filepath.Join(s.uploadDir, savedName), data, 0o644); err != nil {
		log.Printf("server: failed to save upload: %v", err)
	}

	items, err := decodeItems(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid JSON file: %v", err), "status": "failed"})
		return
	}

	resp := s.process(c, items, "upload_results")
	resp.UploadedFile = savedName
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetResults(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(s.resultsDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Results file not found", "status": "not_found"})
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleListResults(c *gin.Context) {
	entries, err := os.ReadDir(s.resultsDir)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"files": []string{}, "count": 0, "message": "No results folder found"})
		return
	}

	type fileInfo struct {
		Filename  string `json:"filename"`
		SizeBytes int64  `json:"size_bytes"`
		Modified  string `json:"modified"`
	}

	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			Filename:  entry.Name(),
			SizeBytes: info.Size(),
			Modified:  info.ModTime().Format(time.RFC3339),
		})
	}

	// Newest first
	sort.Slice(files, func(i, j int) bool { return files[i].Modified > files[j].Modified })

	c.JSON(http.StatusOK, gin.H{
		"files":   files,
		"count":   len(files),
		"message": fmt.Sprintf("Found %d result files", len(files)),
	})
}

// process runs the batch and persists the aggregate result snapshot
func (s *Server) process(c *gin.Context, items []worker.NewsItem, prefix string) *batchResponse {
	results := s.processor.ProcessAll(c.Request.Context(), items)

	resp := &batchResponse{
		ProcessedCount: len(results),
		Results:        results,
		Status:         "completed",
		Timestamp:      time.Now().Format(time.RFC3339),
	}

	filename := fmt.Sprintf("%s_%s.json", prefix, time.Now().Format("20060102_150405"))
	if err := s.saveResults(filename, resp); err != nil {
		log.Printf("server: failed to save results file: %v", err)
	} else {
		resp.ResultsFile = filename
	}

	return resp
}

func (s *Server) saveResults(filename string, resp *batchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.MkdirAll(s.resultsDir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	return os.WriteFile(filepath.Join(s.resultsDir, filename), data, 0o644)
}

// decodeItems accepts a single item object, a bare array of items, or a
// wrapper object with a news_items field. A present but empty news_items
// list is a valid empty batch.
func decodeItems(body []byte) ([]worker.NewsItem, error) {
	var wrapper struct {
		NewsItems *[]worker.NewsItem `json:"news_items"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.NewsItems != nil {
		return *wrapper.NewsItems, nil
	}

	var list []worker.NewsItem
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var single worker.NewsItem
	if err := json.Unmarshal(body, &single); err == nil && (single.Text != "" || single.URL != "") {
		return []worker.NewsItem{single}, nil
	}

	return nil, fmt.Errorf("invalid data format, expected JSON object or array")
}
