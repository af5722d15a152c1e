package simstore

import (
	"context"
	"errors"
)

// ProxyMiddleware returns a Service that forwards every call to remote
// endpoints, ignoring the wrapped service.
func ProxyMiddleware(endpoints *EndpointSet) ServiceMiddleware {
	return func(next Service) Service {
		return &proxyMiddleware{
			endpoints: endpoints,
		}
	}
}

type proxyMiddleware struct {
	endpoints *EndpointSet
}

func (mw *proxyMiddleware) Close() error {
	return errors.New("method not implemented")
}

func (mw *proxyMiddleware) Put(ctx context.Context, owner string, items []string) error {
	req := StoreRequest{
		UserName:   owner,
		StringList: items,
	}

	_, err := mw.endpoints.Store(ctx, req)
	return err
}

func (mw *proxyMiddleware) Query(ctx context.Context, owner string, text string) (*Match, error) {
	req := QueryRequest{
		UserName:    owner,
		QueryString: text,
	}

	resp, err := mw.endpoints.Query(ctx, req)
	if err != nil {
		return nil, err
	}

	result, ok := resp.(QueryResponse)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return &Match{
		Query: result.Query,
		Text:  result.MostSimilarString,
		Index: result.Index,
		Score: result.CosineScore,
	}, nil
}
