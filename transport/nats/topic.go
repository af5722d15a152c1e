package nats

import (
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/simstore"
)

func AddEndpoints(group micro.Group, endpoints simstore.EndpointSet) error {
	if err := group.AddEndpoint("store", StoreHandler(endpoints.Store)); err != nil {
		return err
	}

	return group.AddEndpoint("query", QueryHandler(endpoints.Query))
}
