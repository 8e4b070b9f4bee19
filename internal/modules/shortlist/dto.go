package shortlist

import "varanbook/internal/domain"

type CreateShortlistRequest struct {
	ToProfileID string `json:"to_profile_id" binding:"required,uuid"`
	Note        string `json:"note,omitempty" binding:"omitempty,max=500"`
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}

type ListRequest struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Items    []domain.Shortlist `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
