package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskmaster/taskmaster-api/internal/models"
	"github.com/taskmaster/taskmaster-api/internal/repository"
	"github.com/taskmaster/taskmaster-api/internal/response"
	"github.com/taskmaster/taskmaster-api/internal/services"
)

// WorkspaceHandlerTestSuite defines the test suite for WorkspaceHandler
type WorkspaceHandlerTestSuite struct {
	suite.Suite
	ctx           context.Context
	workspaceRepo *repository.MemoryWorkspaceRepository
	handler       *WorkspaceHandler
}

// SetupTest runs before each test
func (suite *WorkspaceHandlerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.workspaceRepo = repository.NewMemoryWorkspaceRepository()
	suite.handler = NewWorkspaceHandler(services.NewWorkspaceService(suite.workspaceRepo))

	gin.SetMode(gin.TestMode)
}

func (suite *WorkspaceHandlerTestSuite) createTestWorkspace(name, ownerID string) *models.Workspace {
	workspace, err := suite.handler.workspaceService.CreateWorkspace(suite.ctx, services.CreateWorkspaceInput{
		Name:    name,
		OwnerID: ownerID,
	})
	suite.Require().NoError(err)
	return workspace
}

func (suite *WorkspaceHandlerTestSuite) newContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
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
	if userID != "" {
		c.Set("user_id", userID)
	}

	return c, w
}

func (suite *WorkspaceHandlerTestSuite) decodeEnvelope(w *httptest.ResponseRecorder) response.Envelope {
	var envelope response.Envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func (suite *WorkspaceHandlerTestSuite) TestCreateWorkspace_Success() {
	body, _ := json.Marshal(map[string]interface{}{"name": "Engineering"})
	c, w := suite.newContext("POST", "/workspaces", body, "u1")

	suite.handler.CreateWorkspace(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	envelope := suite.decodeEnvelope(w)
	assert.True(suite.T(), envelope.Success)

	data := envelope.Data.(map[string]interface{})
	workspace := data["workspace"].(map[string]interface{})
	assert.Equal(suite.T(), "Engineering", workspace["name"])
	assert.Equal(suite.T(), "USER#u1", workspace["owner"])
	assert.NotEmpty(suite.T(), workspace["workspaceId"])
}

func (suite *WorkspaceHandlerTestSuite) TestCreateWorkspace_NameRequired() {
	body, _ := json.Marshal(map[string]interface{}{"name": "  "})
	c, w := suite.newContext("POST", "/workspaces", body, "u1")

	suite.handler.CreateWorkspace(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *WorkspaceHandlerTestSuite) TestGetWorkspace_Success() {
	created := suite.createTestWorkspace("Engineering", "u1")

	c, w := suite.newContext("GET", "/workspaces/"+created.WorkspaceID, nil, "u1")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}}

	suite.handler.GetWorkspace(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *WorkspaceHandlerTestSuite) TestGetWorkspace_NotFound() {
	c, w := suite.newContext("GET", "/workspaces/ghost", nil, "u1")
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	suite.handler.GetWorkspace(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	envelope := suite.decodeEnvelope(w)
	suite.Require().NotNil(envelope.Error)
	assert.Equal(suite.T(), "Workspace not found", envelope.Error.Message)
}

func (suite *WorkspaceHandlerTestSuite) TestGetWorkspace_NotMember() {
	created := suite.createTestWorkspace("Engineering", "u1")

	c, w := suite.newContext("GET", "/workspaces/"+created.WorkspaceID, nil, "u9")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}}

	suite.handler.GetWorkspace(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *WorkspaceHandlerTestSuite) TestAddMember_Success() {
	created := suite.createTestWorkspace("Engineering", "u1")

	body, _ := json.Marshal(map[string]interface{}{"userId": "u2"})
	c, w := suite.newContext("POST", "/workspaces/"+created.WorkspaceID+"/members", body, "u1")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}}

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	stored, err := suite.workspaceRepo.FindByID(suite.ctx, created.WorkspaceID)
	suite.Require().NoError(err)
	assert.True(suite.T(), stored.IsMember("u2"))
}

func (suite *WorkspaceHandlerTestSuite) TestAddMember_Duplicate() {
	created := suite.createTestWorkspace("Engineering", "u1")

	body, _ := json.Marshal(map[string]interface{}{"userId": "u1"})
	c, w := suite.newContext("POST", "/workspaces/"+created.WorkspaceID+"/members", body, "u1")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}}

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *WorkspaceHandlerTestSuite) TestAddMember_MissingUserID() {
	created := suite.createTestWorkspace("Engineering", "u1")

	body, _ := json.Marshal(map[string]interface{}{})
	c, w := suite.newContext("POST", "/workspaces/"+created.WorkspaceID+"/members", body, "u1")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}}

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *WorkspaceHandlerTestSuite) TestRemoveMember_NotOwner() {
	created := suite.createTestWorkspace("Engineering", "u1")
	_, err := suite.handler.workspaceService.AddMember(suite.ctx, created.WorkspaceID, "u1", "u2")
	suite.Require().NoError(err)

	c, w := suite.newContext("DELETE", "/workspaces/"+created.WorkspaceID+"/members/u1", nil, "u2")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}, {Key: "userId", Value: "u1"}}

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *WorkspaceHandlerTestSuite) TestRemoveMember_Success() {
	created := suite.createTestWorkspace("Engineering", "u1")
	_, err := suite.handler.workspaceService.AddMember(suite.ctx, created.WorkspaceID, "u1", "u2")
	suite.Require().NoError(err)

	c, w := suite.newContext("DELETE", "/workspaces/"+created.WorkspaceID+"/members/u2", nil, "u1")
	c.Params = gin.Params{{Key: "id", Value: created.WorkspaceID}, {Key: "userId", Value: "u2"}}

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	stored, err := suite.workspaceRepo.FindByID(suite.ctx, created.WorkspaceID)
	suite.Require().NoError(err)
	assert.False(suite.T(), stored.IsMember("u2"))
}

func TestWorkspaceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceHandlerTestSuite))
}
