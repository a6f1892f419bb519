package server

import (
	"io/fs"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"

	"github.com/hmans/todoql/internal/config"
	"github.com/hmans/todoql/internal/web"
)

// newEmbeddedHandler mounts GraphQL under cfg.GraphQLPath behind CORS and
// serves static assets from every other path.
func newEmbeddedHandler(cfg config.ServerConfig, schema *graphql.Schema, assets fs.FS, log zerolog.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginRequestLog(log))

	api := router.Group(cfg.GraphQLPath, cors.New(corsConfig(cfg.CORSOrigins)))
	api.Any("", gin.WrapH(GraphQLHandler(schema, cfg.GraphQLPath)))

	router.NoRoute(gin.WrapH(web.Handler(assets)))

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
