package domain

import "time"

type Book struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"` // owner, empty once the owner is deleted
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate string    `json:"published_date"` // YYYY-MM-DD
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	Rating        int       `json:"rating"` // 1-5
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookInput is the body of a create request.
type BookInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Language      string `json:"language"`
	Rating        int    `json:"rating"`
}

// BookUpdate is a partial update; nil fields are unchanged.
type BookUpdate struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	PageCount     *int    `json:"page_count,omitempty"`
	Language      *string `json:"language,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
}

// BookDetail is a book with its reviews and tags.
type BookDetail struct {
	Book
	Reviews []Review `json:"reviews"`
	Tags    []Tag    `json:"tags"`
}

type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id,omitempty"`
	ReviewText string    `json:"review_text"`
	Rating     int       `json:"rating"` // 1-5
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReviewInput is the body of a new review.
type ReviewInput struct {
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagInput names a tag to create or rename.
type TagInput struct {
	Name string `json:"name"`
}

// TagsToBook lists tag names to attach to a book, created on demand.
type TagsToBook struct {
	Tags []TagInput `json:"tags"`
}
