package repository

import "context"

// StyleRepository — внешний tile/style сервер: выдаёт URL style-документа
// для темы и умеет его проверить.
type StyleRepository interface {
	// StyleURL — чистая функция темы: "dark" даёт тёмный стиль, всё
	// остальное — светлый.
	StyleURL(theme string) string
	// Probe запрашивает style-документ и возвращает ошибку, если сервер
	// недоступен или отвечает не 200.
	Probe(ctx context.Context, theme string) error
}
