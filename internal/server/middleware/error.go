package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"github.com/nulzo/greencode-advisor/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached with c.Error as an RFC 9457
// problem. Classified dispatch errors keep their message as the problem
// detail; anything unclassified gets a generic one.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		problem := ProblemFor(err)
		problem.Instance = c.Request.URL.Path

		if problem.Status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.Int("status", problem.Status),
				zap.Error(problem.Log),
			)
		}

		// RFC 9457 dictates the json is at the root
		c.Header("Content-Type", "application/problem+json")
		c.AbortWithStatusJSON(problem.Status, problem)
	}
}

// ProblemFor maps an error to a problem. Selection and configuration
// failures are the caller's to fix; transport failures are temporary;
// provider failures are upstream's.
func ProblemFor(err error) *api.Problem {
	var problem *api.Problem
	if errors.As(err, &problem) {
		return problem
	}

	var dispatch *llm.Error
	if !errors.As(err, &dispatch) {
		return api.InternalError("An unexpected error occurred.", api.WithLog(err))
	}

	opts := []api.ProblemOption{
		api.WithLog(dispatch.Err),
		api.WithExtension("kind", dispatch.Kind.String()),
	}
	if dispatch.Provider != "" {
		opts = append(opts, api.WithExtension("provider", dispatch.Provider))
	}

	switch dispatch.Kind {
	case llm.KindSelection, llm.KindConfiguration:
		return api.BadRequest(dispatch.Message, opts...)
	case llm.KindTransport:
		return api.ServiceUnavailable(dispatch.Message, opts...)
	case llm.KindProvider, llm.KindEmptyResponse:
		return api.BadGateway(dispatch.Message, opts...)
	}
	return api.InternalError("An unexpected error occurred.", opts...)
}
