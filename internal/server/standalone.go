package server

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// newStandaloneHandler answers GraphQL on every path of the listener,
// with no middleware beyond request logging.
func newStandaloneHandler(schema *graphql.Schema, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", GraphQLHandler(schema, "/"))
	return withRequestLog(log, mux)
}
