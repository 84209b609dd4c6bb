package storage

import (
	"errors"
	"fmt"

	"shiningstar/internal/app/ds"

	"github.com/gabriel-vasile/mimetype"
)

const MaxImageSize = 5 << 20

var (
	ErrFileNotFound  = fmt.Errorf("file: %w", ds.ErrNotFound)
	ErrImageTooLarge = errors.New("image exceeds 5 MB")
	ErrNotAnImage    = errors.New("only jpeg, png and gif images are allowed")
)

var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// DetectImage проверяет размер и определяет тип по содержимому.
// Имени файла и content type от клиента не доверяем.
func DetectImage(data []byte) (Image, error) {
	if len(data) > MaxImageSize {
		return Image{}, ErrImageTooLarge
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowedImages[m.String()]; ok {
			return Image{Data: data, ContentType: m.String(), Extension: ext}, nil
		}
	}
	return Image{}, fmt.Errorf("%w (got %s)", ErrNotAnImage, mt.String())
}
