package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"image-search-api/internal/config"
	"image-search-api/internal/logging"
	"image-search-api/internal/services"
)

// UploadHandler labels objects announced by storage notifications
type UploadHandler struct {
	cfg           *config.Config
	ingestService services.IngestService
	logger        *logrus.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(cfg *config.Config, ingestService services.IngestService, logger *logrus.Logger) *UploadHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &UploadHandler{
		cfg:           cfg,
		ingestService: ingestService,
		logger:        logger,
	}
}

// HandleS3Event labels every object in the batch and returns a status line.
// Only a missing table name fails the invocation; per-object failures are
// logged and counted.
func (h *UploadHandler) HandleS3Event(ctx context.Context, event events.S3Event) (string, error) {
	ctx, log := logging.Invocation(ctx, h.logger)

	if len(event.Records) == 0 {
		log.Info(MsgNoRecords)
		return MsgNoRecords, nil
	}

	if err := h.cfg.ValidateForUpload(); err != nil {
		log.WithError(err).Error("Upload handler is misconfigured")
		return "", err
	}

	refs := make([]services.ObjectRef, 0, len(event.Records))
	for _, record := range event.Records {
		refs = append(refs, services.ObjectRefFromEvent(record.S3.Bucket.Name, record.S3.Object.Key))
	}

	summary := h.ingestService.Ingest(ctx, refs)
	log.WithFields(logrus.Fields{
		"records":   summary.Total(),
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("Finished processing notification batch")

	return summary.String(), nil
}

// ProcessS3Event is the gin adapter for HandleS3Event
func (h *UploadHandler) ProcessS3Event(c *gin.Context) {
	var event events.S3Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid S3 event: " + err.Error()})
		return
	}

	status, err := h.HandleS3Event(c.Request.Context(), event)
	if err != nil {
		writeResponse(c, InternalError(err))
		return
	}

	writeResponse(c, jsonResponse(http.StatusOK, IngestResponse{Success: true, Status: status}))
}
