package payloads

// CafeImagePayload — задача на копирование картинки кафе в объектное хранилище,
// передаётся через RabbitMQ.
type CafeImagePayload struct {
	CafeID   int64  `json:"cafe_id"`
	ImageURL string `json:"image_url"`
}
