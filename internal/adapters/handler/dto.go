package handler

import "imagetools/internal/core/domain"

type generateRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type generateResponse struct {
	Success       bool          `json:"success"`
	ImageURL      string        `json:"imageUrl"`
	RevisedPrompt string        `json:"revisedPrompt,omitempty"`
	Usage         *domain.Usage `json:"usage,omitempty"`
}

type recognitionResponse struct {
	Success bool          `json:"success"`
	Result  string        `json:"result"`
	Usage   *domain.Usage `json:"usage,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
