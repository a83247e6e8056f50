package dto

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type AskExpertRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`

	// Optional per-request overrides; zero values fall back to the
	// server configuration.
	UserID        string   `json:"user_id"`
	RecencyWeight *float64 `json:"recency_weight" validate:"omitempty,gte=0,lte=1"`
}

type RetrievedDocumentResponse struct {
	Source       string  `json:"source,omitempty"`
	Title        string  `json:"title,omitempty"`
	LastModified string  `json:"last_modified,omitempty"`
	Score        float64 `json:"score"`
	Content      string  `json:"content"`
}

type AskExpertResponse struct {
	Answer    string                      `json:"answer"`
	Queries   []string                    `json:"queries,omitempty"`
	Shoes     []*ShoeResponse             `json:"shoes,omitempty"`
	Documents []RetrievedDocumentResponse `json:"documents,omitempty"`
}
