package http

import (
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
)

type ReviewsHandler struct {
	Reviews *service.ReviewService
}

// HandleCreate reviews a book as the caller.
//
//	@Summary	Add review
//	@Tags		Reviews
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		book_id	path		string					true	"Book ID"
//	@Param		request	body		booksdk.ReviewRequest	true	"Review"
//	@Success	201		{object}	booksdk.Review
//	@Failure	400		{object}	booksdk.ErrorResponse	"Validation failed"
//	@Failure	404		{object}	booksdk.ErrorResponse	"Book not found"
//	@Router		/api/v1/reviews/book/{book_id} [post].
func (h *ReviewsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	review, err := h.Reviews.AddReview(r.Context(), actor(r), r.PathValue("book_id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, review)
}

// HandleListByBook lists a book's reviews.
//
//	@Summary	List reviews of a book
//	@Tags		Reviews
//	@Security	BearerAuth
//	@Produce	json
//	@Param		book_id	path		string	true	"Book ID"
//	@Success	200		{array}		booksdk.Review
//	@Failure	404		{object}	booksdk.ErrorResponse	"Book not found"
//	@Router		/api/v1/reviews/book/{book_id} [get].
func (h *ReviewsHandler) HandleListByBook(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListReviews(r.Context(), r.PathValue("book_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reviews)
}

//	@Summary	Get review
//	@Tags		Reviews
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Review ID"
//	@Success	200	{object}	booksdk.Review
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/reviews/{id} [get].
func (h *ReviewsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	review, err := h.Reviews.GetReview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, review)
}

// HandleDelete removes a review. Author or admin only.
//
//	@Summary	Delete review
//	@Tags		Reviews
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Review ID"
//	@Success	204
//	@Failure	403	{object}	booksdk.ErrorResponse
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/reviews/{id} [delete].
func (h *ReviewsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.DeleteReview(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
