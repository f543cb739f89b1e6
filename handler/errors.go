package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"notemark/apperr"
	"notemark/middleware"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var errBodyTooLarge = errors.New("request body too large")

// respondError is the single place errors become HTTP responses. fallback is the client
// message for internal failures, whose details are only logged.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	if errors.Is(err, errBodyTooLarge) {
		utils.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large", nil)
		return
	}

	switch apperr.TypeOf(err) {
	case apperr.TypeValidation:
		utils.TrackError("validation")
		if fields := apperr.FieldsOf(err); len(fields) > 0 {
			utils.Fail(c, http.StatusBadRequest, apperr.MessageOf(err), fields)
			return
		}
		utils.BadRequest(c, apperr.MessageOf(err))
	case apperr.TypeInvalidID:
		utils.BadRequest(c, apperr.MessageOf(err))
	case apperr.TypeNotFound:
		utils.NotFound(c, apperr.MessageOf(err))
	case apperr.TypeUnauthenticated, apperr.TypeInvalidCredentials:
		utils.TrackError("auth")
		utils.Unauthorized(c, apperr.MessageOf(err))
	case apperr.TypeConflict:
		utils.Conflict(c, apperr.MessageOf(err))
	default:
		if mongo.IsDuplicateKeyError(err) {
			utils.Conflict(c, "Duplicate key error")
			return
		}
		utils.TrackError("internal")
		logger.Error(fallback,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.RequestID(c)))
		utils.InternalError(c, fallback)
	}
}

// bindJSON decodes the request body into dst. An empty body decodes as {}.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errBodyTooLarge
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := strings.SplitN(typeErr.Field, ".", 2)[0]
		switch field {
		case "tags":
			return apperr.ValidationField("tags", "Tags must be an array")
		case "":
			return apperr.Validation("Invalid request body", nil)
		default:
			return apperr.ValidationField(field, strings.ToUpper(field[:1])+field[1:]+" has an invalid type")
		}
	}

	return apperr.Validation("Invalid request body", nil)
}
