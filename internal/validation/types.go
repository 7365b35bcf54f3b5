package validation

// GenerateRequest is the inbound body for image generation
type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	Quality     string `json:"quality"`
	InputImage  string `json:"input_image,omitempty"`
}

// DownloadRequest is the inbound body for the download proxy
type DownloadRequest struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}
