package http

import (
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
)

type TagsHandler struct {
	Tags *service.TagService
}

//	@Summary	List tags
//	@Tags		Tags
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	booksdk.Tag
//	@Router		/api/v1/tags [get].
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Tags.ListTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tags)
}

//	@Summary	Get tag
//	@Tags		Tags
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Tag ID"
//	@Success	200	{object}	booksdk.Tag
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/tags/{id} [get].
func (h *TagsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tag, err := h.Tags.GetTag(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tag)
}

// HandleCreate adds a tag. Admin only.
//
//	@Summary	Create tag
//	@Tags		Tags
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		booksdk.TagRequest	true	"Tag"
//	@Success	201		{object}	booksdk.Tag
//	@Failure	409		{object}	booksdk.ErrorResponse	"Name taken"
//	@Router		/api/v1/tags [post].
func (h *TagsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.TagInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	tag, err := h.Tags.CreateTag(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tag)
}

// HandleRename renames a tag. Admin only.
//
//	@Summary	Rename tag
//	@Tags		Tags
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Tag ID"
//	@Param		request	body		booksdk.TagRequest	true	"New name"
//	@Success	200		{object}	booksdk.Tag
//	@Failure	404		{object}	booksdk.ErrorResponse
//	@Failure	409		{object}	booksdk.ErrorResponse	"Name taken"
//	@Router		/api/v1/tags/{id} [put].
func (h *TagsHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	var in domain.TagInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	tag, err := h.Tags.RenameTag(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tag)
}

// HandleDelete removes a tag from every book. Admin only.
//
//	@Summary	Delete tag
//	@Tags		Tags
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Tag ID"
//	@Success	204
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/tags/{id} [delete].
func (h *TagsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Tags.DeleteTag(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTagBook attaches tags to a book by name, creating unknown ones.
//
//	@Summary	Tag a book
//	@Tags		Tags
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		book_id	path		string					true	"Book ID"
//	@Param		request	body		booksdk.TagBookRequest	true	"Tag names"
//	@Success	200		{object}	booksdk.BookDetail
//	@Failure	403		{object}	booksdk.ErrorResponse
//	@Failure	404		{object}	booksdk.ErrorResponse
//	@Router		/api/v1/tags/book/{book_id} [post].
func (h *TagsHandler) HandleTagBook(w http.ResponseWriter, r *http.Request) {
	var in domain.TagsToBook
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	book, err := h.Tags.AddTagsToBook(r.Context(), actor(r), r.PathValue("book_id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}
