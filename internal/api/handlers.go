package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/romangod6/sitemapgen/internal/storage"
)

type Handler struct {
	store       storage.Store
	outputDir   string
	sitemapsDir string
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func NewHandler(store storage.Store, outputDir, sitemapsDir string) *Handler {
	return &Handler{
		store:       store,
		outputDir:   outputDir,
		sitemapsDir: sitemapsDir,
	}
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Run history is not configured"})
		return
	}

	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	runs, err := h.store.ListRuns(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch runs"})
		return
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  runs,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetRun(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Run history is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid run ID"})
		return
	}

	run, err := h.store.GetRun(c.Request.Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch run"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// ServeIndex serves the root sitemap.xml.
func (h *Handler) ServeIndex(c *gin.Context) {
	h.serveXML(c, filepath.Join(h.outputDir, "sitemap.xml"))
}

// ServeChunk serves one file from the sitemaps directory. Only plain .xml
// names are accepted.
func (h *Handler) ServeChunk(c *gin.Context) {
	name := c.Param("file")
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".xml") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid sitemap name"})
		return
	}
	h.serveXML(c, filepath.Join(h.outputDir, h.sitemapsDir, name))
}

func (h *Handler) serveXML(c *gin.Context, path string) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sitemap not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read sitemap"})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
