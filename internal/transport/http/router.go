package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookworm/book-inventory/internal/handlers"
	mwauth "github.com/bookworm/book-inventory/internal/middleware/auth"
)

type Deps struct {
	AuthHandler *handlers.AuthHandler
	BookHandler *handlers.BookHandler
	Gate        *mwauth.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "Book Inventory API is running"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.GET("/me", d.AuthHandler.Me, d.Gate.RequireAuth)

	books := api.Group("/books", d.Gate.RequireAuth)
	books.GET("", d.BookHandler.GetBooks)
	books.GET("/:id", d.BookHandler.GetBook)
	books.POST("", d.BookHandler.CreateBook)
	books.PUT("/:id", d.BookHandler.UpdateBook)
	books.DELETE("/:id", d.BookHandler.DeleteBook)
}
