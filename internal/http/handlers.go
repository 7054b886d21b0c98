package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/schedpanel/internal/jobs"
)

// DefaultProfileName is used when a run request omits profile_name.
const DefaultProfileName = "Default"

// Publisher broadcasts one log line to push channel subscribers.
type Publisher interface {
	Publish(line string) bool
	ClientCount() int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	publisher Publisher
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	started   time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(publisher Publisher, logger *zap.Logger, metrics *monitoring.Metrics) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		started:   time.Now(),
	}
}

// RunRequest is the job form posted to /run. Every field except
// profile_name is required.
type RunRequest struct {
	URL            string `form:"url" binding:"required"`
	TargetTime     string `form:"target_time" binding:"required"`
	ButtonKeywords string `form:"button_keywords" binding:"required"`
	ChromePath     string `form:"chrome_path" binding:"required"`
	UserDataDir    string `form:"user_data_dir" binding:"required"`
	ProfileName    string `form:"profile_name"`
}

// Fields converts the request to a form snapshot, applying the profile
// default.
func (r RunRequest) Fields() jobs.Fields {
	profile := r.ProfileName
	if profile == "" {
		profile = DefaultProfileName
	}
	return jobs.Fields{
		URL:            r.URL,
		TargetTime:     r.TargetTime,
		ButtonKeywords: r.ButtonKeywords,
		ChromePath:     r.ChromePath,
		UserDataDir:    r.UserDataDir,
		ProfileName:    profile,
	}
}

// RunCalledLine is the line published for every accepted run.
func RunCalledLine(url string) string {
	return "[INFO] Run called with URL: " + url
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "schedpanel dev backend",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"subscribers": h.publisher.ClientCount(),
		"uptime":      time.Since(h.started).Round(time.Second).String(),
	})
}

// Run accepts a job form, announces it on the push channel and returns
// immediately. Nothing is scheduled.
func (h *Handlers) Run(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	fields := req.Fields()
	jobID := uuid.NewString()

	h.metrics.IncRunRequests()
	h.publisher.Publish(RunCalledLine(fields.URL))
	h.logger.Info("Run called",
		zap.String("job_id", jobID),
		zap.String("url", fields.URL),
		zap.String("target_time", fields.TargetTime),
		zap.String("profile_name", fields.ProfileName),
		zap.String("submission_id", c.GetHeader(jobs.SubmissionHeader)),
	)

	c.JSON(http.StatusOK, gin.H{
		"status": "started",
		"job_id": jobID,
	})
}
