package repository

import (
	"context"
	"time"

	"github.com/vendormap-service/internal/domain"
)

// OrderRepository - доступ к датасету заказов
type OrderRepository interface {
	// ListByCity возвращает все заказы города (без ограничения по датам);
	// используется для all-time подсчета уникальных пользователей.
	ListByCity(ctx context.Context, city string) ([]domain.Order, error)

	// ListFiltered возвращает заказы города, ограниченные диапазоном дат
	// и бизнес-линиями. Пустой список бизнес-линий не ограничивает,
	// как и отсутствующая граница диапазона.
	ListFiltered(ctx context.Context, city string, businessLines []string, from, to *time.Time) ([]domain.Order, error)

	// ListBusinessLines возвращает отсортированный список бизнес-линий
	ListBusinessLines(ctx context.Context) ([]string, error)
}
