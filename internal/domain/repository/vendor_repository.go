package repository

import (
	"context"

	"github.com/vendormap-service/internal/domain"
)

// VendorRepository - доступ к датасету вендоров
type VendorRepository interface {
	// ListByCity возвращает вендоров города в порядке хранения.
	// Для city == "all" возвращает всех вендоров.
	ListByCity(ctx context.Context, city string) ([]domain.Vendor, error)

	// ListStatuses возвращает отсортированный список известных status_id
	ListStatuses(ctx context.Context) ([]int, error)

	// ListGrades возвращает отсортированный список известных грейдов
	ListGrades(ctx context.Context) ([]string, error)
}
