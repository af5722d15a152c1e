package simstore

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	Store endpoint.Endpoint
	Query endpoint.Endpoint
}

func MakeEndpoints(svc Service) EndpointSet {
	return EndpointSet{
		Store: StoreEndpoint(svc),
		Query: QueryEndpoint(svc),
	}
}

type StoreRequest struct {
	UserName   string   `json:"user_name"`
	StringList []string `json:"string_list"`
}

type StoreResponse struct {
	Message string `json:"message"`
}

func StoreEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(StoreRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		err := svc.Put(ctx, req.UserName, req.StringList)
		if err != nil {
			return nil, err
		}

		return StoreResponse{
			Message: "Strings stored successfully for user: " + req.UserName,
		}, nil
	}
}

type QueryRequest struct {
	UserName    string `json:"user_name"`
	QueryString string `json:"query_string"`
}

type QueryResponse struct {
	Query             string  `json:"query"`
	MostSimilarString string  `json:"most_similar_string"`
	CosineScore       float64 `json:"cosine_score"`
	Index             int     `json:"index"`
}

func QueryEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(QueryRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		match, err := svc.Query(ctx, req.UserName, req.QueryString)
		if err != nil {
			return nil, err
		}

		return QueryResponse{
			Query:             match.Query,
			MostSimilarString: match.Text,
			CosineScore:       match.Score,
			Index:             match.Index,
		}, nil
	}
}
