package domain

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// Viewport — текущее состояние камеры карты: центр и zoom. Живёт только на
// клиенте и зеркалируется в query string страницы (lat, lng, zoom), чтобы
// ссылка воспроизводила тот же вид.
type Viewport struct {
	CenterLat float64 `json:"lat"`
	CenterLng float64 `json:"lng"`
	Zoom      float64 `json:"zoom"`
}

// RestoreViewport разбирает lat/lng/zoom из query string. Viewport
// применяется только если обе координаты распарсились как конечные числа;
// иначе возвращается def без изменений (частичное применение одной
// координаты запрещено). Отсутствующий или невалидный zoom при валидных
// координатах заменяется на fallbackZoom.
func RestoreViewport(q url.Values, def Viewport, fallbackZoom float64) (Viewport, bool) {
	lat, latOK := parseFinite(q.Get("lat"))
	lng, lngOK := parseFinite(q.Get("lng"))
	if !latOK || !lngOK {
		return def, false
	}

	zoom, zoomOK := parseFinite(q.Get("zoom"))
	if !zoomOK {
		zoom = fallbackZoom
	}

	return Viewport{CenterLat: lat, CenterLng: lng, Zoom: zoom}, true
}

// Query сериализует viewport в query-параметры: координаты с точностью до
// 6 знаков, zoom — до 2.
func (v Viewport) Query() url.Values {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", v.CenterLat))
	q.Set("lng", fmt.Sprintf("%.6f", v.CenterLng))
	q.Set("zoom", fmt.Sprintf("%.2f", v.Zoom))
	return q
}

// QueryString — каноничная строка query для history.replaceState.
func (v Viewport) QueryString() string {
	// url.Values.Encode сортирует ключи: lat, lng, zoom
	return v.Query().Encode()
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
