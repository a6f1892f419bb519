package server

import (
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

const allowedMethods = "GET, POST, OPTIONS"

// GraphQLHandler serves the GraphQL Playground on GET and executes
// GraphQL requests on POST. A bare OPTIONS gets an empty 204.
// endpoint is the path the Playground posts to.
func GraphQLHandler(schema *graphql.Schema, endpoint string) http.Handler {
	api := &relay.Handler{Schema: schema}
	ide := playground.Handler("todoql", endpoint)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ide.ServeHTTP(w, r)
		case http.MethodPost:
			api.ServeHTTP(w, r)
		case http.MethodOptions:
			w.Header().Set("Allow", allowedMethods)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Allow", allowedMethods)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
