package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGraphQL(t *testing.T) {
	before := testutil.ToFloat64(graphqlOperations.WithLabelValues("obtenerPosts", "ok"))
	RecordGraphQL("obtenerPosts", 10*time.Millisecond, false)
	assert.Equal(t, before+1, testutil.ToFloat64(graphqlOperations.WithLabelValues("obtenerPosts", "ok")))

	beforeAnon := testutil.ToFloat64(graphqlOperations.WithLabelValues("anonymous", "error"))
	RecordGraphQL("", time.Millisecond, true)
	assert.Equal(t, beforeAnon+1, testutil.ToFloat64(graphqlOperations.WithLabelValues("anonymous", "error")))
}

func TestRecordJob(t *testing.T) {
	before := testutil.ToFloat64(jobDeleted.WithLabelValues("test_sweep"))
	RecordJob("test_sweep", 3, nil)
	RecordJob("test_sweep", 5, errors.New("db down"))
	assert.Equal(t, before+3, testutil.ToFloat64(jobDeleted.WithLabelValues("test_sweep")))
	assert.Equal(t, 1.0, testutil.ToFloat64(jobRuns.WithLabelValues("test_sweep", "error")))
}

func TestRecordUpload(t *testing.T) {
	before := testutil.ToFloat64(uploadBytes)
	RecordUpload(128, nil)
	RecordUpload(64, errors.New("bucket missing"))
	assert.Equal(t, before+128, testutil.ToFloat64(uploadBytes))
}

func TestHandler(t *testing.T) {
	RecordGraphQL("obtenerAnuncios", time.Millisecond, false)

	app := fiber.New()
	app.Get("/metrics", Handler())
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "foro_graphql_operations_total")
}
