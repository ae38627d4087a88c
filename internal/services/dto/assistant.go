package dto

type ChatRequest struct {
	Query string `json:"query" validate:"required,min=1,max=10000"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
