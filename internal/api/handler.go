package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ad-platforms/internal/database"
	"ad-platforms/internal/ingest"
	"ad-platforms/internal/metrics"
)

const defaultUploadsLimit = 20

// Handler holds dependencies for all API handlers.
type Handler struct {
	platforms PlatformService
	history   UploadHistory
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// New creates a Handler.
func New(p PlatformService, history UploadHistory, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{platforms: p, history: history, metrics: m, log: log}
}

// healthCheck handles GET /health.
// @Summary      Health check
// @Description  Returns the service status and the number of platforms currently loaded.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status: healthy"
// @Router       /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"platforms": len(h.platforms.Platforms()),
	})
}

// upload handles POST /api/upload.
// @Summary      Upload a platform file
// @Description  Replace all platforms with the contents of a "Name:/loc1,/loc2" file. Malformed lines are skipped.
// @Tags         platforms
// @Accept       multipart/form-data
// @Produce      plain
// @Param        file  formData  file    true  "Platform file"
// @Success      200   {string}  string  "File is loaded"
// @Failure      400   {string}  string  "File is empty"
// @Failure      500   {object}  ErrorResponse
// @Router       /upload [post]
func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil || fh.Size == 0 {
		h.log.Error("attempt to upload an empty file")
		c.String(http.StatusBadRequest, msgFileEmpty)
		return
	}

	f, err := fh.Open()
	if err != nil {
		internalError(c, err)
		return
	}
	defer f.Close()

	res, err := ingest.ParseReader(f)
	if err != nil {
		internalError(c, err)
		return
	}

	h.logResult(fh.Filename, res)
	if !res.Empty {
		h.platforms.Load(res.Platforms)
	}
	h.metrics.UploadsTotal.Inc()
	h.record(fh.Filename, res)

	h.log.Info("file uploaded", "filename", fh.Filename)
	c.String(http.StatusOK, msgFileLoaded)
}

// logResult reports every skipped line and the load summary.
func (h *Handler) logResult(filename string, res ingest.Result) {
	// A file holding nothing but a byte order mark has no lines.
	if res.Empty {
		h.log.Error("File is empty", "filename", filename)
		return
	}
	for _, d := range res.Skipped {
		h.metrics.SkippedLines.WithLabelValues(string(d.Reason)).Inc()
		h.log.Warn("line skipped", "filename", filename, "line", d.Line, "reason", d.Reason)
	}
	h.log.Info("platforms loaded", "filename", filename, "platforms", len(res.Platforms), "skipped", len(res.Skipped))
}

// record stores the upload in the history. Failures are logged only, the
// platforms are already live by the time this runs.
func (h *Handler) record(filename string, res ingest.Result) {
	u := &database.Upload{
		Filename: filename,
		Lines:    res.Lines,
		Loaded:   len(res.Platforms),
		Skipped:  make(database.SkippedLines, 0, len(res.Skipped)),
	}
	for _, d := range res.Skipped {
		u.Skipped = append(u.Skipped, database.SkippedLine{Line: d.Line, Reason: string(d.Reason)})
	}
	if err := h.history.SaveUpload(u); err != nil {
		h.log.Warn("upload history not saved", "filename", filename, "error", err)
	}
}

// search handles GET /api/search?location=<location>.
// @Summary      Search platforms by location
// @Description  Returns the platforms with at least one location starting with the given one.
// @Tags         platforms
// @Produce      json
// @Param        location  query     string    true  "Location, e.g. /ru/msk"
// @Success      200       {array}   string
// @Failure      400       {string}  string  "Location is incorrect / No one find"
// @Router       /search [get]
func (h *Handler) search(c *gin.Context) {
	loc := c.Query("location")
	if loc == "" {
		h.log.Error("trying to find data on an empty location")
		c.String(http.StatusBadRequest, msgLocationIncorrect)
		return
	}

	names := h.platforms.Search(loc)
	if len(names) == 0 {
		h.log.Warn("no platforms for location, or no file uploaded yet", "location", loc)
		c.String(http.StatusBadRequest, msgNoneFound)
		return
	}

	h.log.Debug("platforms found", "location", loc, "count", len(names))
	c.JSON(http.StatusOK, names)
}

// listPlatforms handles GET /api/platforms.
// @Summary      List platforms
// @Description  Returns every platform in the current store with its locations.
// @Tags         platforms
// @Produce      json
// @Success      200  {array}  platform.Platform
// @Router       /platforms [get]
func (h *Handler) listPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, h.platforms.Platforms())
}

// listUploads handles GET /api/uploads?limit=<n>.
// @Summary      List uploads
// @Description  Returns the most recent uploads, newest first, with their skipped lines.
// @Tags         uploads
// @Produce      json
// @Param        limit  query     int  false  "Number of uploads (1-100, default 20)"
// @Success      200    {array}   database.Upload
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /uploads [get]
func (h *Handler) listUploads(c *gin.Context) {
	limit := defaultUploadsLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}
	if limit < 1 || limit > database.MaxRecent {
		badRequest(c, database.ErrInvalidLimit.Error())
		return
	}

	uploads, err := h.history.Recent(limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploads)
}

// getUpload handles GET /api/uploads/:id.
// @Summary      Get an upload
// @Description  Returns one upload with its skipped lines.
// @Tags         uploads
// @Produce      json
// @Param        id   path      int  true  "Upload ID"
// @Success      200  {object}  database.Upload
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /uploads/{id} [get]
func (h *Handler) getUpload(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		badRequest(c, "id must be a positive integer")
		return
	}

	u, err := h.history.FindByID(uint(id))
	if err != nil {
		internalError(c, err)
		return
	}
	if u == nil {
		notFound(c, "upload")
		return
	}
	c.JSON(http.StatusOK, u)
}
