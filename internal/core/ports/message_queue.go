package ports

import (
	"context"

	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
)

// CafeImagePublisher публикует задачи на архивирование картинки кафе.
// Используется usecase'ом после добавления/редактирования кафе
type CafeImagePublisher interface {
	PublishCafeImage(ctx context.Context, payload payloads.CafeImagePayload) error
}

// CafeImageConsumer потребляет задачи на архивирование картинок,
// используется воркером
type CafeImageConsumer interface {
	// StartConsumingCafeImages начинает прослушивание очереди
	// и вызывает handler для каждого сообщения
	StartConsumingCafeImages(ctx context.Context, handler func(context.Context, payloads.CafeImagePayload) error) error
}
