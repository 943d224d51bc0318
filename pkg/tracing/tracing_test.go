package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		tp.Shutdown(context.Background())
	})
	return recorder
}

func TestStartAndEnd(t *testing.T) {
	recorder := recordSpans(t)

	_, span := Start(context.Background(), "quiz.submit", attribute.Int64("quiz.id", 3))
	End(span, nil)
	_, failed := Start(context.Background(), "progress.complete_lesson")
	End(failed, errors.New("lesson not found"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "quiz.submit", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("quiz.id", 3))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "lesson not found", spans[1].Status().Description)
}

func TestGinMiddlewareNamesSpansByRoute(t *testing.T) {
	recorder := recordSpans(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/quizzes/:id", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quizzes/17", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /quizzes/:id", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusInternalServerError))
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
