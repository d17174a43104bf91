package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/ports"
)

// maxImageBytes caps accepted image uploads at 10 MiB.
const maxImageBytes = 10 << 20

// formImage reads an uploaded image from the named multipart field.
// Returns (nil, nil) when the field is absent so optional uploads bind
// cleanly.
func formImage(c echo.Context, field string) (*ports.ImageBlob, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readImage(fh)
}

func readImage(fh *multipart.FileHeader) (*ports.ImageBlob, error) {
	if fh.Size > maxImageBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}
	if len(data) > maxImageBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &ports.ImageBlob{Data: data, ContentType: contentType}, nil
}
