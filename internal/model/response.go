package model

// Page wraps a paginated list.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CustomResponse is the body of a rejected validation request.
type CustomResponse struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	StatusCode    int    `json:"statusCode"`
	Status        string `json:"status"`
	CustomMessage string `json:"customMessage"`
	Path          string `json:"path"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
