package service

import (
	"github.com/google/uuid"

	"cliper/internal/models"
)

// trimPage drops the look-ahead row fetched by the repositories and reports whether it existed.
func trimPage[T any](items []T, page models.Page) ([]T, bool) {
	if len(items) > page.Limit {
		return items[:page.Limit], true
	}
	return items, false
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
