package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flarexio/simstore"
)

const (
	ToolStoreStrings = "store_strings"
	ToolQueryString  = "query_string"
)

var ErrUnknownTool = errors.New("unknown tool")

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      mcp.RequestId   `json:"id"`
	Method  mcp.MCPMethod   `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func ErrorResponse(id mcp.RequestId, code int, message string) mcp.JSONRPCError {
	resp := mcp.JSONRPCError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
	}

	resp.Error.Code = code
	resp.Error.Message = message

	return resp
}

type MCPEndpoint func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage

const MCPSERVER_INSTRUCTIONS string = `SimStore keeps, per user, a list of text strings and finds the stored string most similar to a query.

Available tools:
- store_strings: embed and store a list of strings for a user, replacing any previous list
- query_string: return the stored string of a user most similar to the query, with its cosine score

Similarity is exact cosine similarity over text embeddings. Ties go to the string stored first.`

var storeStringsSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "user_name": {
      "type": "string",
      "description": "Owner of the string list"
    },
    "string_list": {
      "type": "array",
      "items": { "type": "string" },
      "minItems": 1,
      "description": "Strings to store, replacing the previous list"
    }
  },
  "required": ["user_name", "string_list"]
}`)

var queryStringSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "user_name": {
      "type": "string",
      "description": "Owner of the string list"
    },
    "query_string": {
      "type": "string",
      "description": "Text to compare against the stored strings"
    }
  },
  "required": ["user_name", "query_string"]
}`)

func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewToolWithRawSchema(ToolStoreStrings,
			"Store a list of strings for a user. Replaces any list stored before.",
			storeStringsSchema,
		),
		mcp.NewToolWithRawSchema(ToolQueryString,
			"Find the stored string of a user most similar to the query.",
			queryStringSchema,
		),
	}
}

func InitializeEndpoint(svc simstore.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.InitializeParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return ErrorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		protocolVersion := mcp.LATEST_PROTOCOL_VERSION
		if clientVersion := params.ProtocolVersion; clientVersion != "" {
			if slices.Contains(mcp.ValidProtocolVersions, clientVersion) {
				protocolVersion = clientVersion
			}
		}

		result := &mcp.InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: mcp.ServerCapabilities{
				Tools: &struct {
					ListChanged bool `json:"listChanged,omitempty"`
				}{},
			},
			ServerInfo: mcp.Implementation{
				Name:    "simstore",
				Version: "1.0.0",
			},
			Instructions: MCPSERVER_INSTRUCTIONS,
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func PingEndpoint(svc simstore.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  struct{}{}, // empty response
		}
	}
}

func ListToolsEndpoint(svc simstore.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		result := &mcp.ListToolsResult{
			Tools: Tools(),
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func CallToolEndpoint(svc simstore.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return ErrorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		callToolReq := mcp.CallToolRequest{
			Request: mcp.Request{
				Method: string(req.Method),
			},
			Params: params,
		}

		result, err := CallTool(ctx, svc, callToolReq)
		if err != nil {
			return ErrorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

// CallTool runs one of the SimStore tools. Service errors are reported in
// the tool result; only malformed calls return an error.
func CallTool(ctx context.Context, svc simstore.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch req.Params.Name {
	case ToolStoreStrings:
		var args simstore.StoreRequest
		if err := req.BindArguments(&args); err != nil {
			return nil, err
		}

		if err := svc.Put(ctx, args.UserName, args.StringList); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText("Strings stored successfully for user: " + args.UserName), nil

	case ToolQueryString:
		var args simstore.QueryRequest
		if err := req.BindArguments(&args); err != nil {
			return nil, err
		}

		match, err := svc.Query(ctx, args.UserName, args.QueryString)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp := simstore.QueryResponse{
			Query:             match.Query,
			MostSimilarString: match.Text,
			CosineScore:       match.Score,
			Index:             match.Index,
		}

		bs, err := json.Marshal(&resp)
		if err != nil {
			return nil, err
		}

		return mcp.NewToolResultText(string(bs)), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Params.Name)
	}
}
