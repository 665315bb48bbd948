package model

type Photo struct {
	ID          string `json:"photo_id"`
	PropertyID  int64  `json:"property_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}
