// Package httpapi exposes games over JSON/HTTP and a live WebSocket stream.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/cheese-chess-rules/internal/domain"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/obslog"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

// Games is the subset of game.Manager served over HTTP.
type Games interface {
	CreateGame(ctx context.Context, req game.NewGameRequest) (*game.Game, error)
	LoadGame(ctx context.Context, id string) (*game.Game, error)
	PlayMove(ctx context.Context, gameID, playerID, from, to string) (*game.MoveResult, error)
	Resign(ctx context.Context, gameID, playerID string) (*game.Game, error)
	RecentResults(ctx context.Context, playerID string, limit int) ([]*domain.GameResult, error)
	Subscribe(ctx context.Context, gameID string) *redis.PubSub
}

type Server struct {
	games     Games
	viewer    *chesspresenter.Viewer
	formatter *chesspresenter.Formatter
}

func New(games Games, viewer *chesspresenter.Viewer, formatter *chesspresenter.Formatter) *Server {
	return &Server{games: games, viewer: viewer, formatter: formatter}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	g := r.Group("/games")
	g.POST("", s.createGame)
	g.GET("/:id", s.getGame)
	g.GET("/:id/board.png", s.getBoardImage)
	g.GET("/:id/score", s.getScore)
	g.POST("/:id/moves", s.playMove)
	g.POST("/:id/resign", s.resign)
	g.GET("/:id/ws", s.stream)

	r.GET("/players/:id/results", s.results)
	return r
}

func (s *Server) createGame(c *gin.Context) {
	var req chessdto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	g, err := s.games.CreateGame(c.Request.Context(), game.NewGameRequest{
		Room:      req.Room,
		WhiteID:   req.WhiteID,
		WhiteName: req.WhiteName,
		BlackID:   req.BlackID,
		BlackName: req.BlackName,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respondState(c, http.StatusCreated, g)
}

func (s *Server) getGame(c *gin.Context) {
	g, err := s.games.LoadGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respondState(c, http.StatusOK, g)
}

func (s *Server) getBoardImage(c *gin.Context) {
	g, err := s.games.LoadGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	state, err := s.viewer.State(c.Request.Context(), g, true)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(state.BoardImage) == 0 {
		c.AbortWithStatus(http.StatusNotImplemented)
		return
	}
	c.Data(http.StatusOK, "image/png", state.BoardImage)
}

func (s *Server) getScore(c *gin.Context) {
	g, err := s.games.LoadGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	state, err := s.viewer.State(c.Request.Context(), g, false)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state.Score)
}

func (s *Server) playMove(c *gin.Context) {
	var req chessdto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	res, err := s.games.PlayMove(c.Request.Context(), c.Param("id"), req.PlayerID, req.From, req.To)
	if err != nil {
		s.fail(c, err)
		return
	}
	state, err := s.viewer.State(c.Request.Context(), res.Game, false)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chessdto.MoveResponse{
		State:    state,
		Move:     *chesspresenter.ToMoveView(res.Game.LastMove),
		Finished: res.Finished,
	})
}

func (s *Server) resign(c *gin.Context) {
	var req chessdto.ResignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	g, err := s.games.Resign(c.Request.Context(), c.Param("id"), req.PlayerID)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respondState(c, http.StatusOK, g)
}

func (s *Server) results(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	list, err := s.games.RecentResults(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	views := make([]chessdto.ResultView, 0, len(list))
	for _, r := range list {
		views = append(views, chesspresenter.ToResultView(r))
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (s *Server) respondState(c *gin.Context, status int, g *game.Game) {
	state, err := s.viewer.State(c.Request.Context(), g, false)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, state)
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		obslog.L().Debug("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
