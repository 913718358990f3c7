package dto

type UploadResponse struct {
	FileURL string `json:"file_url"`
	Mode    string `json:"mode"`
}
