package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/obslog"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, chess.ErrInvalidPosition):
		return http.StatusBadRequest
	case chess.IsRuleViolation(err), errors.Is(err, chess.ErrNoKingFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrChallengeNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrConcurrentMove),
		errors.Is(err, game.ErrAlreadyPlaying):
		return http.StatusConflict
	case errors.Is(err, game.ErrSelfMatch), errors.Is(err, game.ErrInvalidPlayers):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) domainError(err error) chessdto.DomainError {
	return chessdto.DomainError{
		Code:      chesspresenter.ErrorCode(err),
		Message:   s.formatter.Rejection(err, nil),
		Retryable: errors.Is(err, game.ErrConcurrentMove),
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		obslog.L().Error("http_internal_error", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, chessdto.ErrorResponse{Error: s.domainError(err)})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, chessdto.ErrorResponse{Error: chessdto.DomainError{
		Code:    "bad_request",
		Message: err.Error(),
	}})
}
