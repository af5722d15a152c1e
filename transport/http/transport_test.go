package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/suite"

	"github.com/flarexio/simstore"
	"github.com/flarexio/simstore/embedding/lookup"

	mcpE "github.com/flarexio/simstore/mcp"
)

type httpTransportTestSuite struct {
	suite.Suite
	provider *lookup.Provider
	router   *gin.Engine
}

func (suite *httpTransportTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.provider = lookup.NewProvider(lookup.Table{
		"I love cats":           {0.9, 0.3, 0.05},
		"I love dogs":           {0.3, 0.9, 0.05},
		"The stock market fell": {0.05, 0.05, 1},
		"I adore my kitten":     {0.85, 0.35, 0},
	})

	svc := simstore.NewService(suite.provider)

	r := gin.New()
	AddRouters(r, simstore.MakeEndpoints(svc))

	endpoints := make(map[mcp.MCPMethod]mcpE.MCPEndpoint)
	endpoints[mcp.MethodPing] = mcpE.PingEndpoint(svc)
	endpoints[mcp.MethodToolsList] = mcpE.ListToolsEndpoint(svc)
	AddStreamableRouters(r, endpoints)

	suite.router = r
}

func (suite *httpTransportTestSuite) post(path string, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var payload map[string]any
	json.Unmarshal(w.Body.Bytes(), &payload)

	return w, payload
}

func (suite *httpTransportTestSuite) TestStoreAndQuery() {
	w, payload := suite.post("/store",
		`{"user_name": "alice", "string_list": ["I love cats", "I love dogs", "The stock market fell"]}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Strings stored successfully for user: alice", payload["message"])

	w, payload = suite.post("/query",
		`{"user_name": "alice", "query_string": "I adore my kitten"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("I adore my kitten", payload["query"])
	suite.Equal("I love cats", payload["most_similar_string"])
	suite.Greater(payload["cosine_score"].(float64), 0.9)
}

func (suite *httpTransportTestSuite) TestAPIRoutes() {
	w, _ := suite.post("/api/store", `{"user_name": "bob", "string_list": ["I love dogs"]}`)
	suite.Equal(http.StatusOK, w.Code)

	w, payload := suite.post("/api/query", `{"user_name": "bob", "query_string": "I adore my kitten"}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("I love dogs", payload["most_similar_string"])
}

func (suite *httpTransportTestSuite) TestBadRequests() {
	cases := []struct {
		path string
		body string
	}{
		{"/store", `{"string_list": ["I love cats"]}`},
		{"/store", `{"user_name": "alice"}`},
		{"/store", `{"user_name": "alice", "string_list": []}`},
		{"/store", `{"user_name": "alice", "string_list": ["I love cats", 42]}`},
		{"/store", `not json`},
		{"/query", `{"user_name": "alice"}`},
		{"/query", `{"query_string": "I love cats"}`},
	}

	for _, tc := range cases {
		w, payload := suite.post(tc.path, tc.body)

		suite.Equal(http.StatusBadRequest, w.Code, tc.body)
		suite.Contains(payload, "error", tc.body)
	}

	suite.Equal(0, suite.provider.Calls())
}

func (suite *httpTransportTestSuite) TestUnknownUser() {
	w, payload := suite.post("/query", `{"user_name": "nobody", "query_string": "I adore my kitten"}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("no data found for user: nobody", payload["error"])
}

func (suite *httpTransportTestSuite) TestEmbeddingFailure() {
	w, payload := suite.post("/store", `{"user_name": "carol", "string_list": ["never embedded"]}`)

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Contains(payload["error"], "embedding failure")
}

func (suite *httpTransportTestSuite) TestMCPRoutes() {
	w, payload := suite.post("/mcp/", `{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(payload, "result")

	w, payload = suite.post("/mcp/", `{"jsonrpc": "2.0", "id": 2, "method": "resources/list"}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(payload, "error")
}

func TestHTTPTransportTestSuite(t *testing.T) {
	suite.Run(t, new(httpTransportTestSuite))
}
