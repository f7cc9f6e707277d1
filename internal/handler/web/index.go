package web

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var indexHTML []byte

// IndexHandler serves the embedded single-page dashboard.
type IndexHandler struct{}

func NewIndexHandler() *IndexHandler { return &IndexHandler{} }

func (h *IndexHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
}

func (h *IndexHandler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
