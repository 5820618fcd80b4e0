package http

import (
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
)

type BooksHandler struct {
	Books *service.BookService
}

// HandleList lists all books, newest first.
//
//	@Summary	List books
//	@Tags		Books
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Param		offset	query		int	false	"Items to skip"
//	@Success	200		{array}		booksdk.Book
//	@Failure	401		{object}	booksdk.ErrorResponse
//	@Router		/api/v1/books [get].
func (h *BooksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	books, err := h.Books.ListBooks(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}

// HandleListByUser lists the books a user added.
//
//	@Summary	List a user's books
//	@Tags		Books
//	@Security	BearerAuth
//	@Produce	json
//	@Param		user_id	path		string	true	"User ID"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Param		offset	query		int		false	"Items to skip"
//	@Success	200		{array}		booksdk.Book
//	@Router		/api/v1/books/user/{user_id} [get].
func (h *BooksHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	books, err := h.Books.ListBooksByUser(r.Context(), r.PathValue("user_id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}

// HandleCreate adds a book owned by the caller.
//
//	@Summary	Create book
//	@Tags		Books
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		booksdk.BookRequest	true	"Book"
//	@Success	201		{object}	booksdk.Book
//	@Failure	400		{object}	booksdk.ErrorResponse	"Validation failed"
//	@Router		/api/v1/books [post].
func (h *BooksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.BookInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	book, err := h.Books.CreateBook(r.Context(), actor(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, book)
}

// HandleGet returns a book with its reviews and tags.
//
//	@Summary	Get book
//	@Tags		Books
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Book ID"
//	@Success	200	{object}	booksdk.BookDetail
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/books/{id} [get].
func (h *BooksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	book, err := h.Books.GetBook(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}

// HandleUpdate applies a partial update. Owner or admin only.
//
//	@Summary	Update book
//	@Tags		Books
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Book ID"
//	@Param		request	body		booksdk.UpdateBookRequest	true	"Fields to change"
//	@Success	200		{object}	booksdk.BookDetail
//	@Failure	403		{object}	booksdk.ErrorResponse
//	@Failure	404		{object}	booksdk.ErrorResponse
//	@Router		/api/v1/books/{id} [patch].
func (h *BooksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var upd domain.BookUpdate
	if err := decode(w, r, &upd); err != nil {
		writeError(w, r, err)
		return
	}
	book, err := h.Books.UpdateBook(r.Context(), actor(r), r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}

// HandleDelete removes a book with its reviews. Owner or admin only.
//
//	@Summary	Delete book
//	@Tags		Books
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Book ID"
//	@Success	204
//	@Failure	403	{object}	booksdk.ErrorResponse
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/books/{id} [delete].
func (h *BooksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Books.DeleteBook(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
