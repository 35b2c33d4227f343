package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"letsdraw/internal/game"
)

// RoomLister é a visão somente leitura das salas usada pelos operadores.
type RoomLister interface {
	Rooms() []game.RoomView
	Room(code string) (game.RoomView, error)
}

// Deps reúne o que o roteador HTTP expõe.
type Deps struct {
	Rooms RoomLister
	// Connections informa quantas conexões WebSocket estão abertas. Opcional.
	Connections func() int
	Health      http.HandlerFunc
	WebSocket http.HandlerFunc
	// StaticDir serve o cliente web em "/". Vazio desliga.
	StaticDir string
}

// NewRouter monta o engine gin com /ws, /health, /rooms e /rooms/:code.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logrus.WithField("component", "http")))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/ws", gin.WrapF(d.WebSocket))
	router.GET("/health", gin.WrapF(d.Health))

	rooms := router.Group("/rooms")
	{
		rooms.GET("", listRooms(d.Rooms, d.Connections))
		rooms.GET("/:code", getRoom(d.Rooms))
	}

	if d.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(d.StaticDir))))
	}
	return router
}

func listRooms(rooms RoomLister, connections func() int) gin.HandlerFunc {
	return func(c *gin.Context) {
		views := rooms.Rooms()
		body := gin.H{"rooms": views, "count": len(views)}
		if connections != nil {
			body["connections"] = connections()
		}
		c.JSON(http.StatusOK, body)
	}
}

func getRoom(rooms RoomLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := rooms.Room(c.Param("code"))
		if errors.Is(err, game.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// LoggerMiddleware registra cada requisição com o nível conforme o status.
func LoggerMiddleware(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}
		entry := log.WithFields(logrus.Fields{
			"status_code": c.Writer.Status(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			entry.Error(msg)
			return
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("server error")
		case status >= 400:
			entry.Warn("client error")
		default:
			entry.Debug("request handled")
		}
	}
}
