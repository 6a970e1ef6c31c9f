package openfin

// PageResults is the pagination envelope wrapping every list endpoint.
type PageResults[T any] struct {
	Results    []T `json:"results"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}
