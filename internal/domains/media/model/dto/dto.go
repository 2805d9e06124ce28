package dto

import (
	"mime/multipart"
	"strings"
)

const (
	KindImage = "image"
	KindVideo = "video"
)

type UploadRequest struct {
	File    *multipart.FileHeader `json:"file" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp video/mp4 video/webm"`
	Content multipart.File        `json:"-"`
}

func (r *UploadRequest) ContentType() string {
	return r.File.Header.Get("Content-Type")
}

// Kind groups an upload by its top level media type.
func (r *UploadRequest) Kind() string {
	if strings.HasPrefix(r.ContentType(), KindVideo+"/") {
		return KindVideo
	}

	return KindImage
}

type UploadResponse struct {
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Kind        string `json:"kind"`
	Size        int64  `json:"size"`
}

type DeleteRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,url"`
}
