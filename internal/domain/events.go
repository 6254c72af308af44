package domain

// События карты. Вместо замыканий, подписанных на слои maplibre, контроллер
// принимает явные типы событий: это исключает дублирующиеся обработчики при
// повторном монтировании.

type MapEvent interface {
	mapEvent()
}

// PointClicked — клик по некластеризованной точке.
type PointClicked struct {
	Feature PointFeature
}

// ClusterClicked — клик по кластеру в точке (Lng, Lat).
type ClusterClicked struct {
	ClusterID int
	Lng       float64
	Lat       float64
}

// ViewportMoved — завершение перемещения камеры (move end, не промежуточные
// кадры).
type ViewportMoved struct {
	Viewport Viewport
}

func (PointClicked) mapEvent()   {}
func (ClusterClicked) mapEvent() {}
func (ViewportMoved) mapEvent()  {}

// Эффекты — результат обработки события контроллером.

type MapEffect interface {
	mapEffect()
}

// PopupEffect — показать подпись с именем точки по координатам.
type PopupEffect struct {
	Name string  `json:"name"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

// EaseToEffect — плавно переместить камеру.
type EaseToEffect struct {
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
	Zoom float64 `json:"zoom"`
}

// ReplaceURLEffect — заменить query string страницы без навигации и без
// новой записи в истории.
type ReplaceURLEffect struct {
	Query string `json:"query"`
}

func (PopupEffect) mapEffect()      {}
func (EaseToEffect) mapEffect()     {}
func (ReplaceURLEffect) mapEffect() {}
