package files

type PresignRequest struct {
	Purpose     string `json:"purpose" binding:"required,oneof=profile_photo document"`
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

type PresignResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}
