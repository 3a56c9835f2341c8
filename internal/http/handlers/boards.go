package handlers

import (
	"net/http"
	"strconv"

	"five_in_row/internal/game"

	"github.com/gin-gonic/gin"
)

// создание доски с заданными границами
func (h *Handler) CreateBoard(c *gin.Context) {
	var req struct {
		MinX *int `json:"min_x"`
		MaxX *int `json:"max_x"`
		MinY *int `json:"min_y"`
		MaxY *int `json:"max_y"`
	}
	if err := c.BindJSON(&req); err != nil || req.MinX == nil || req.MaxX == nil || req.MinY == nil || req.MaxY == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bounds required"})
		return
	}

	info, err := h.Boards.Create(game.Bounds{MinX: *req.MinX, MaxX: *req.MaxX, MinY: *req.MinY, MaxY: *req.MaxY})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *Handler) GetBoard(c *gin.Context) {
	info, err := h.Boards.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) DeleteBoard(c *gin.Context) {
	if err := h.Boards.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ход: поставить камень владельца в клетку
func (h *Handler) PlaceStone(c *gin.Context) {
	var req struct {
		X     *int   `json:"x"`
		Y     *int   `json:"y"`
		Owner string `json:"owner"`
	}
	if err := c.BindJSON(&req); err != nil || req.X == nil || req.Y == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	owner, err := game.ParseOwner(req.Owner)
	if err != nil {
		writeError(c, err)
		return
	}

	conf, err := h.Boards.Place(c.Request.Context(), c.Param("id"), game.Coord{X: *req.X, Y: *req.Y}, owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

// снять камень с клетки (?x=&y=)
func (h *Handler) ClearStone(c *gin.Context) {
	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if errX != nil || errY != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y required"})
		return
	}

	conf, err := h.Boards.Clear(c.Request.Context(), c.Param("id"), game.Coord{X: x, Y: y})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (h *Handler) Sequences(c *gin.Context) {
	owner, err := game.ParseOwner(c.Query("owner"))
	if err != nil {
		writeError(c, err)
		return
	}

	seqs, err := h.Boards.Sequences(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		writeError(c, err)
		return
	}

	closable := 0
	for _, s := range seqs {
		if s.Closable {
			closable++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"owner":     owner,
		"sequences": seqs,
		"closable":  closable,
	})
}

// пустые клетки рядом с камнями - кандидаты для следующего хода
func (h *Handler) Frontier(c *gin.Context) {
	fields, err := h.Boards.Frontier(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}
