package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/internal/safe"
	"github.com/customeros/mailbroker/internal/tracing"
)

// respond writes a completed call. The status is always 200; failures are signalled by isError.
func respond(c *gin.Context, span opentracing.Span, result dto.SafeResult) {
	if result.IsError {
		ext.Error.Set(span, true)
		span.LogFields(log.String("result.error", fmt.Sprint(result.Result)))
	}
	c.JSON(http.StatusOK, result)
}

func badRequest(c *gin.Context, span opentracing.Span, err error) {
	tracing.TraceErr(span, err)
	c.JSON(http.StatusBadRequest, safe.FailureMessage("Invalid request: "+err.Error()))
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}
