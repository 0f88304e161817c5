package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"image-search-api/internal/config"
	"image-search-api/internal/logging"
	"image-search-api/internal/services"
	"image-search-api/pkg/lambda"
)

// SearchHandler serves keyword searches over the label table
type SearchHandler struct {
	cfg           *config.Config
	searchService services.SearchService
	logger        *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(cfg *config.Config, searchService services.SearchService, logger *logrus.Logger) *SearchHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &SearchHandler{
		cfg:           cfg,
		searchService: searchService,
		logger:        logger,
	}
}

// HandleSearch answers a search request. Every outcome, failures included,
// is expressed as a response; the returned error is always nil.
func (h *SearchHandler) HandleSearch(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
	ctx, log := logging.Invocation(ctx, h.logger)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Recovered from panic in search handler")
			resp, err = InternalError(fmt.Errorf("%v", r)), nil
		}
	}()

	if rejected := RejectBlankKeyword(req); rejected != nil {
		log.Warn("Search rejected: keyword is missing")
		return rejected, nil
	}
	keyword := req.Query("keyword")

	if err := h.cfg.ValidateForSearch(); err != nil {
		log.WithError(err).Error("Search handler is misconfigured")
		return InternalError(err), nil
	}

	result, err := h.searchService.Search(ctx, keyword)
	if err != nil {
		if services.IsValidationError(err) {
			log.WithError(err).Warn("Search rejected")
			return errorResponse(http.StatusBadRequest, MsgKeywordRequired), nil
		}
		log.WithError(err).Error("Error processing search request")
		return InternalError(err), nil
	}

	log.WithFields(logrus.Fields{
		"returned": len(result.Images),
		"dropped":  result.Dropped,
	}).Info("Search completed")

	return jsonResponse(http.StatusOK, SearchResponse{Success: true, Images: result.Images}), nil
}

// RejectBlankKeyword returns the 400 response for a request whose keyword is
// absent or blank, and nil otherwise. It needs no configuration or storage.
func RejectBlankKeyword(req *lambda.Request) *lambda.Response {
	if strings.TrimSpace(req.Query("keyword")) == "" {
		return errorResponse(http.StatusBadRequest, MsgKeywordRequired)
	}
	return nil
}

// Search is the gin adapter for HandleSearch
func (h *SearchHandler) Search(c *gin.Context) {
	resp, _ := h.HandleSearch(c.Request.Context(), toRequest(c))
	writeResponse(c, resp)
}
