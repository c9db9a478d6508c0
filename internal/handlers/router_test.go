package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/workboard-api/internal/dto"
)

// RouterTestSuite exercises the full middleware chain
type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *RouterTestSuite) SetupTest() {
	suite.router = NewRouter(newTestDependencies(suite.T()))
}

func (suite *RouterTestSuite) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.do("GET", "/health", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"ok"`)
}

func (suite *RouterTestSuite) TestOpenReport_Redirects() {
	w := suite.do("GET", "/reports/looker-ejemplo", "")
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("https://lookerstudio.google.com/embed/s/p3C951mk4xQ?embedded=true", w.Header().Get("Location"))

	w = suite.do("GET", "/reports/looker-ventas", "")
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("https://lookerstudio.google.com/embed/reporting/TU-ID-DE-INFORME-2/page/tuPagina?embedded=true", w.Header().Get("Location"))
}

func (suite *RouterTestSuite) TestOpenReport_UnknownFallsBackToList() {
	w := suite.do("GET", "/reports/looker-nope", "")
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal(ReportListPath, w.Header().Get("Location"))
}

func (suite *RouterTestSuite) TestReports() {
	w := suite.do("GET", "/api/reports", "")
	suite.Equal(http.StatusOK, w.Code)

	var list struct {
		Reports []dto.ReportDTO `json:"reports"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Require().Len(list.Reports, 5)
	suite.Equal("looker-general", list.Reports[0].ID)

	w = suite.do("GET", "/api/reports/looker-usuarios", "")
	suite.Equal(http.StatusOK, w.Code)
	var report dto.ReportDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	suite.True(strings.HasSuffix(report.EmbedURL, "/reporting/TU-ID-DE-INFORME-3/page/tuPagina?embedded=true"))

	w = suite.do("GET", "/api/reports/looker-nope", "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestResolveURL() {
	w := suite.do("GET", "/api/reports/resolve?url=https%3A%2F%2Flookerstudio.google.com%2Freporting%2FXYZ%3Ffoo%3Dbar", "")
	suite.Equal(http.StatusOK, w.Code)

	var resolved dto.ResolvedURLDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resolved))
	suite.Equal("https://lookerstudio.google.com/embed/reporting/XYZ?foo=bar&embedded=true", resolved.EmbedURL)

	w = suite.do("GET", "/api/reports/resolve", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestTaskRoutes() {
	w := suite.do("GET", "/api/tasks/JIRA-125", "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/api/tasks/JIRA-999", "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("PATCH", "/api/tasks/JIRA-999", `{"title": "x"}`)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("GET", "/api/tasks/stats", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"total":8`)

	w = suite.do("GET", "/api/projects", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"project":"JIRA"`)

	w = suite.do("PATCH", "/api/tasks/JIRA-124", `{"issue_type": "epic"}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"issue_type":"epic"`)
}

func (suite *RouterTestSuite) TestSessionUser() {
	w := suite.do("GET", "/api/session/user", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"id":"user-1"`)

	w = suite.do("PUT", "/api/session/user", `{"user_id": "user-9"}`)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("PUT", "/api/session/user", `{"user_id": "user-3"}`)
	suite.Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	w = suite.do("GET", "/api/session/user", "", cookies...)
	suite.Contains(w.Body.String(), `"id":"user-3"`)

	w = suite.do("POST", "/api/time-logs", `{"task_id": "JIRA-125", "date": "2023-06-16", "hours": 2}`, cookies...)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var entry dto.TimeLogDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	suite.Equal("Ana García", entry.User.DisplayName)

	w = suite.do("GET", "/api/tasks?assignee_id=me", "", cookies...)
	suite.Contains(w.Body.String(), "JIRA-125")
	suite.NotContains(w.Body.String(), "JIRA-123")
}

func (suite *RouterTestSuite) TestUsers() {
	w := suite.do("GET", "/api/users", "")
	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Users []dto.UserDTO `json:"users"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Users, 4)
	suite.Equal("https://i.pravatar.cc/48?u=1", response.Users[0].AvatarURL)
}

func (suite *RouterTestSuite) TestTimeLogRoutes() {
	w := suite.do("DELETE", "/api/time-logs/unknown", "")
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do("PATCH", "/api/time-logs/unknown", `{"hours": 1}`)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("GET", "/api/time-logs/summary?date=2023-06-15", "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/api/time-logs/export?format=csv", "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestBoardMoves() {
	w := suite.do("POST", "/api/board/moves", `{"task_id": "JIRA-126", "status": "done"}`)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do("GET", "/api/tasks?status=done", "")
	suite.Contains(w.Body.String(), "JIRA-126")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
