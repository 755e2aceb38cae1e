package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/gosuda/boardlive/internal/api/v1"
	"github.com/gosuda/boardlive/internal/api/ws"
	"github.com/gosuda/boardlive/internal/auth"
	"github.com/gosuda/boardlive/internal/store/postgres"
	redisstore "github.com/gosuda/boardlive/internal/store/redis"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, pubsub *redisstore.PubSub) {
	v1.RegisterBoardRoutes(api, store, pubsub)
	v1.RegisterListRoutes(api, store, pubsub)
	v1.RegisterCardRoutes(api, store, pubsub)
	v1.RegisterMemberRoutes(api, store)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/", hub.Serve)
}
