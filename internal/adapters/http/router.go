package http

import (
	"context"
	"net/http"
	"slices"

	"github.com/dkeye/relay/internal/adapters/signal"
	"github.com/dkeye/relay/internal/app/orch"
	"github.com/dkeye/relay/internal/config"
	"github.com/dkeye/relay/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "ct"

// ClientTokenMiddleware gives every browser a stable token kept in the session cookie.
// The token becomes the default user id of the connections it opens.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, orch *orch.Orchestrator) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("RelaySessions", store))
	r.Use(ClientTokenMiddleware())

	ctrl := signal.NewSignalWSController(orch, cfg)
	serveWS := func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("path", c.FullPath()).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	}

	r.Static("/static", cfg.StaticPath)
	// Older clients open the socket on the root path.
	r.GET("/", func(c *gin.Context) {
		if websocket.IsWebSocketUpgrade(c.Request) {
			serveWS(c)
			return
		}
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/ws", serveWS)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"rooms":          orch.Registry.Count(),
			"presence_rooms": orch.Presence.Rooms(),
		})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")
	api.GET("/ws/signal", serveWS)

	// GET /api/rooms: list rooms
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": orch.Registry.List()})
	})

	// GET /api/rooms/:name/members: connection ids in a room
	api.GET("/rooms/:name/members", func(c *gin.Context) {
		name := domain.RoomName(c.Param("name"))
		members := orch.Registry.Members(name)
		if len(members) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ids := make([]domain.ConnID, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID())
		}
		slices.Sort(ids)
		c.JSON(http.StatusOK, gin.H{"name": name, "members": ids})
	})

	// GET /api/rooms/:name/locations: presence snapshot
	api.GET("/rooms/:name/locations", func(c *gin.Context) {
		name := domain.RoomName(c.Param("name"))
		c.JSON(http.StatusOK, gin.H{"name": name, "locations": orch.Locations(name)})
	})

	return r
}
