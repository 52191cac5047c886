package dto

import (
	"io"
	"mime/multipart"

	"github.com/chaitali929/coremodeling/internal/models"
)

// MediaFile is an uploaded file the service reads once.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func NewMediaFile(fh *multipart.FileHeader) MediaFile {
	return MediaFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// GalleryResponse is returned by uploads and gallery reads.
type GalleryResponse struct {
	Photos []string      `json:"photos"`
	Videos []string      `json:"videos"`
	Name   string        `json:"name"`
	Items  []GalleryItem `json:"items,omitempty"`
}

// GalleryItem is one entry of the combined view: photos first, then videos, in stored order.
type GalleryItem struct {
	Kind     string `json:"kind"` // image or video
	URL      string `json:"url"`
	Position int    `json:"position"`
}

func NewGalleryResponse(a *models.Account, withItems bool) *GalleryResponse {
	resp := &GalleryResponse{
		Photos: nonNil(a.Photos),
		Videos: nonNil(a.Videos),
		Name:   a.Name,
	}
	if !withItems {
		return resp
	}

	resp.Items = make([]GalleryItem, 0, len(a.Photos)+len(a.Videos))
	for _, url := range a.Photos {
		resp.Items = append(resp.Items, GalleryItem{Kind: "image", URL: url, Position: len(resp.Items)})
	}
	for _, url := range a.Videos {
		resp.Items = append(resp.Items, GalleryItem{Kind: "video", URL: url, Position: len(resp.Items)})
	}
	return resp
}

type UploadMediaRequest struct {
	Type models.MediaKind `form:"type"`
}
