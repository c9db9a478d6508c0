package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workboard-api/internal/catalog"
	"github.com/yukikurage/workboard-api/internal/constants"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/repository"
	"github.com/yukikurage/workboard-api/internal/seed"
	"github.com/yukikurage/workboard-api/internal/services"
)

// newTestDependencies returns services over a freshly seeded workspace
func newTestDependencies(t *testing.T) Dependencies {
	t.Helper()
	gin.SetMode(gin.TestMode)

	taskRepo := repository.NewTaskRepository()
	timeLogRepo := repository.NewTimeLogRepository()
	require.NoError(t, seed.Load(taskRepo, timeLogRepo))

	tasks := services.NewTaskService(taskRepo, repository.NewUserRepository(seed.Users()))

	resolver := catalog.NewResolver("")
	reports, err := catalog.New(resolver, catalog.DefaultDefinitions())
	require.NoError(t, err)

	return Dependencies{
		Tasks:         tasks,
		TimeLogs:      services.NewTimeLogService(timeLogRepo, tasks),
		Catalog:       reports,
		Resolver:      resolver,
		SessionStore:  cookie.NewStore([]byte("test-secret")),
		DefaultUserID: "user-1",
	}
}

// createUserContext builds a handler context as if CurrentUser had run
func createUserContext(method, url string, body []byte, user models.UserRef) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)

	return c, w
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return body
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}
