package tenant

import "varanbook/internal/domain"

type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
	Slug string `json:"slug" binding:"required,min=2,max=100"`

	Domain string `json:"domain,omitempty"`

	ContactPerson  string `json:"contact_person" binding:"required"`
	ContactEmail   string `json:"contact_email" binding:"required,email"`
	ContactNumber  string `json:"contact_number" binding:"required"`
	WhatsappNumber string `json:"whatsapp_number,omitempty"`
	Address        string `json:"address,omitempty"`
	Pin            string `json:"pin,omitempty" binding:"omitempty,len=6,numeric"`
	UpiID          string `json:"upi_id,omitempty"`
	Castes         string `json:"castes,omitempty"`

	Plan      domain.TenantPlan `json:"plan,omitempty"`
	MaxUsers  int               `json:"max_users,omitempty"`
	MaxAdmins int               `json:"max_admins,omitempty"`
}

type UpdateTenantRequest struct {
	Name *string `json:"name,omitempty"`

	Domain *string `json:"domain,omitempty"`

	ContactPerson  *string `json:"contact_person,omitempty"`
	ContactEmail   *string `json:"contact_email,omitempty"`
	ContactNumber  *string `json:"contact_number,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
	Address        *string `json:"address,omitempty"`
	Pin            *string `json:"pin,omitempty"`
	UpiID          *string `json:"upi_id,omitempty"`
	Castes         *string `json:"castes,omitempty"`

	Plan      *domain.TenantPlan `json:"plan,omitempty"`
	MaxUsers  *int               `json:"max_users,omitempty"`
	MaxAdmins *int               `json:"max_admins,omitempty"`
	IsActive  *bool              `json:"is_active,omitempty"`
}

type ListResponse struct {
	Items    []domain.Tenant `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
