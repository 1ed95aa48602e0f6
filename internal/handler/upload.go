package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blog/internal/errors"
)

const pictureField = "picture"

// readPicture returns the uploaded picture, or nil when the form has none.
// Uploads larger than limit fail with ErrValidation.
func readPicture(c echo.Context, limit int64) ([]byte, error) {
	fh, err := c.FormFile(pictureField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: picture: %v", apperrors.ErrValidation, err)
	}
	if fh.Size > limit {
		return nil, fmt.Errorf("%w: picture exceeds %d bytes", apperrors.ErrValidation, limit)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open picture: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read picture: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: picture exceeds %d bytes", apperrors.ErrValidation, limit)
	}
	return data, nil
}
