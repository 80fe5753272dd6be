package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/api/apierr"
)

func writeErr(c *gin.Context, logger *zap.Logger, op string, err error) {
	if apierr.Handle(c, err) {
		logger.Warn("mapped error", zap.String("op", op), zap.Error(err))
		return
	}

	logger.Error(op+" failed, couldnt map the error", zap.Error(err))
	apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("error parsing request", zap.Error(err))
	apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
}
