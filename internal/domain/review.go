package domain

// CategoryMovies scopes every upstream query to movie reviews.
const CategoryMovies = "MOV"

// Review is a single movie review as served by the reviews API.
// Field names on the wire are fixed by the upstream contract.
type Review struct {
	ID            int     `json:"id"`
	AuthorID      string  `json:"authorId"`
	AuthorName    string  `json:"authorName"`
	CategoryID    string  `json:"categoryId"`
	CategoryTitle string  `json:"categoryTitle"`
	Subject       string  `json:"subject"`
	Summary       string  `json:"summary"`
	Text          *string `json:"text"` // nil when the author wrote no body
	Rating        int     `json:"rating"`
}
