package handlers

import (
	"errors"
	"net/http"

	"five_in_row/internal/game"
	"five_in_row/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Boards  *service.BoardService
	Version string
}

func NewHandler(boards *service.BoardService, version string) *Handler {
	return &Handler{Boards: boards, Version: version}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.Version})
}

// переводит ошибки сервиса и доски в HTTP статус
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCellOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrOutOfBounds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInvalidBounds),
		errors.Is(err, game.ErrInvalidOwner),
		errors.Is(err, service.ErrBoardTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
