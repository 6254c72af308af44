// Package tileserver — клиент внешнего tile/style сервера, который отдаёт
// style-документы карты для светлой и тёмной тем.
package tileserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает новый клиент style-сервера
func NewClient(cfg *config.TileServerConfig, logger *zap.Logger) repository.StyleRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// StyleURL — чистая функция темы. Любое значение, кроме "dark", даёт
// светлый стиль (так ведёт себя и клиент карты: system/unknown -> light).
func (c *client) StyleURL(theme string) string {
	if theme == "dark" {
		return fmt.Sprintf("%s/styles/dark/style.json", c.baseURL)
	}
	return fmt.Sprintf("%s/styles/light/style.json", c.baseURL)
}

// Probe запрашивает style-документ. Ошибка загрузки стиля не фатальна для
// карты, поэтому вызывающая сторона только логирует её.
func (c *client) Probe(ctx context.Context, theme string) error {
	url := c.StyleURL(theme)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create style request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Style server request failed",
			zap.String("url", url),
			zap.Error(err))
		return fmt.Errorf("style request: %w", err)
	}
	defer resp.Body.Close()

	// Тело не нужно, но вычитываем для переиспользования соединения.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Style server returned non-OK status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("style server status %d", resp.StatusCode)
	}

	return nil
}
