package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookworm/book-inventory/internal/logging"
	"github.com/bookworm/book-inventory/internal/models"
	"github.com/bookworm/book-inventory/internal/mykafka"
	"github.com/bookworm/book-inventory/internal/repo"
)

type BookHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type bookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	Publisher   string  `json:"publisher"`
	PublishYear int     `json:"publishYear"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
}

func (r *bookRequest) validate() error {
	if r.Title == "" {
		return errors.New("Book title cannot be empty")
	}
	if r.Author == "" {
		return errors.New("Book author cannot be empty")
	}
	if r.ISBN == "" {
		return errors.New("Book ISBN cannot be empty")
	}
	if r.Quantity < 0 {
		return errors.New("Book quantity cannot be negative")
	}
	return nil
}

func (h *BookHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "book_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *BookHandler) GetBooks(c echo.Context) error {
	books, err := h.Repo.ListBooks(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list_books_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	book, err := h.Repo.FindBookByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book_create")

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Publisher:   req.Publisher,
		PublishYear: req.PublishYear,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}

	if err := h.Repo.CreateBook(ctx, book); err != nil {
		if errors.Is(err, repo.ErrBookExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "Book with this ISBN already exists")
		}
		l.Error("create_book_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	h.publish(c, book.ID, map[string]any{
		"type":   "book_created",
		"bookID": book.ID,
		"title":  book.Title,
	})

	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book_update")

	book, err := h.Repo.FindBookByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.Publisher = req.Publisher
	book.PublishYear = req.PublishYear
	book.Description = req.Description
	book.Quantity = req.Quantity
	book.Price = req.Price
	book.ImageURL = req.ImageURL
	book.Category = req.Category

	if err := h.Repo.UpdateBook(ctx, book); err != nil {
		l.Error("update_book_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	h.publish(c, book.ID, map[string]any{
		"type":   "book_updated",
		"bookID": book.ID,
		"title":  book.Title,
	})

	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.Repo.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		logging.FromContext(ctx).Error("delete_book_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	h.publish(c, id, map[string]any{
		"type":   "book_deleted",
		"bookID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
