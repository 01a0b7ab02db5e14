package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/logger"
	"github.com/jobdesk/notifier/pkg/apperror"
	log "github.com/sirupsen/logrus"
)

func respondError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("request failed: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
