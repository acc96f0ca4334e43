// Package response turns handler results and errors into the uniform
// {status, message, data, meta} envelope.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hrms/internal/domain"
	"hrms/internal/pagination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const resultKey = "response.result"

type Meta struct {
	PageID     int   `json:"pageId"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	HasNext    bool  `json:"hasNext"`
}

type Body struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type result struct {
	status int
	data   any
}

// Write records the handler's result; Envelope serializes it after the handler returns.
func Write(c *gin.Context, status int, data any) {
	c.Set(resultKey, result{status: status, data: data})
}

// NoContent records an empty 204 result.
func NoContent(c *gin.Context) {
	c.Set(resultKey, result{status: http.StatusNoContent})
}

// Format builds the success body. meta is attached only for a GET carrying
// integer pageId and pageSize while md holds a total count.
func Format(method string, query url.Values, status int, data any, md *pagination.Metadata) Body {
	body := Body{Status: status, Message: "", Data: data}
	if method != http.MethodGet || md == nil {
		return body
	}
	pageID, okID := queryInt(query, "pageId")
	pageSize, okSize := queryInt(query, "pageSize")
	total, okTotal := md.TotalCount()
	if !okID || !okSize || !okTotal {
		return body
	}
	body.Meta = &Meta{
		PageID:     pageID,
		PageSize:   pageSize,
		TotalCount: total,
		HasNext:    hasNext(pageID, pageSize, total),
	}
	return body
}

// hasNext reports pageID*pageSize < total without forming the product.
func hasNext(pageID, pageSize int, total int64) bool {
	if pageID <= 0 || pageSize <= 0 || total <= 0 {
		return false
	}
	return int64(pageID) <= (total-1)/int64(pageSize)
}

func queryInt(q url.Values, key string) (int, bool) {
	if !q.Has(key) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Envelope formats whatever the handler chain produced. Errors recorded with
// c.Error win over a recorded result; responses already written (file
// downloads) are left alone.
func Envelope(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if last := c.Errors.Last(); last != nil {
			HandleError(c, log, last.Err)
			return
		}

		v, ok := c.Get(resultKey)
		if !ok {
			return
		}
		res := v.(result)
		if res.status == http.StatusNoContent {
			c.Status(http.StatusNoContent)
			return
		}
		md := pagination.FromContext(c.Request.Context())
		c.JSON(res.status, Format(c.Request.Method, c.Request.URL.Query(), res.status, res.data, md))
	}
}

// HandleError writes the error envelope. Classified errors keep their status
// and message; anything else is a 500 with a generic message.
func HandleError(c *gin.Context, log *zap.Logger, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
		if status >= http.StatusInternalServerError {
			log.Error(fmt.Sprintf("[%s] %s", appErr.Kind, message),
				zap.String("trace", appErr.Trace()),
				zap.String("request_id", c.GetString("request_id")),
			)
		} else {
			log.Warn(fmt.Sprintf("[%s] %s - %s %s", appErr.Kind, message, c.Request.Method, c.Request.URL.RequestURI()),
				zap.String("request_id", c.GetString("request_id")),
			)
		}
	} else {
		log.Error("Unexpected error occurred",
			zap.Error(err),
			zap.String("request_id", c.GetString("request_id")),
		)
	}

	c.AbortWithStatusJSON(status, Body{Status: status, Message: message, Data: nil})
}

// Recover routes panics to HandleError; use with gin.CustomRecovery.
func Recover(log *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", recovered)
		}
		HandleError(c, log, err)
	}
}
