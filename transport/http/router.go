package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flarexio/simstore"

	mcpE "github.com/flarexio/simstore/mcp"
)

func AddRouters(r *gin.Engine, endpoints simstore.EndpointSet) {
	r.POST("/store", StoreHandler(endpoints.Store))
	r.POST("/query", QueryHandler(endpoints.Query))

	api := r.Group("/api")
	{
		api.POST("/store", StoreHandler(endpoints.Store))
		api.POST("/query", QueryHandler(endpoints.Query))
	}
}

func AddStreamableRouters(r *gin.Engine, endpoints map[mcp.MCPMethod]mcpE.MCPEndpoint) {
	mcp := r.Group("/mcp")
	{
		mcp.POST("/", MCPStreamableHandler(endpoints))
	}
}
