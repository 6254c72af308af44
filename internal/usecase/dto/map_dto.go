package dto

import "github.com/linuskangsoftware/bubbly/internal/domain"

// GeoJSONGeometry — точечная геометрия в порядке [lng, lat].
type GeoJSONGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSONFeature — фича для maplibre. Свойства кластеров повторяют
// формат supercluster: cluster, cluster_id, point_count,
// point_count_abbreviated.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection — ответ GET /map/clusters.
type FeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// NewFeatureCollection рендерит доменные фичи в GeoJSON.
func NewFeatureCollection(features []domain.Feature) *FeatureCollection {
	out := &FeatureCollection{Type: "FeatureCollection", Features: make([]GeoJSONFeature, 0, len(features))}
	for _, f := range features {
		lng, lat := f.Coordinates()
		gf := GeoJSONFeature{
			Type:     "Feature",
			Geometry: GeoJSONGeometry{Type: "Point", Coordinates: [2]float64{lng, lat}},
		}
		if f.IsCluster() {
			gf.Properties = map[string]interface{}{
				"cluster":                 true,
				"cluster_id":              f.Cluster.ClusterID,
				"point_count":             f.Cluster.PointCount,
				"point_count_abbreviated": f.Cluster.Abbreviated,
			}
		} else {
			gf.Properties = map[string]interface{}{
				"id":   f.Point.ID,
				"name": f.Point.Name,
			}
		}
		out.Features = append(out.Features, gf)
	}
	return out
}

// ClustersRequest — параметры запроса кластеров.
type ClustersRequest struct {
	West  float64 `query:"west"`
	South float64 `query:"south"`
	East  float64 `query:"east"`
	North float64 `query:"north"`
	Zoom  int     `query:"zoom"`
}

// ExpansionZoomResponse — зум, на котором кластер распадается.
type ExpansionZoomResponse struct {
	ClusterID int `json:"clusterId"`
	Zoom      int `json:"zoom"`
}

// StyleResponse — URL стиля карты для выбранной темы.
type StyleResponse struct {
	Theme string `json:"theme"`
	URL   string `json:"url"`
}

// ViewportResponse — восстановленный вьюпорт и канонический query.
type ViewportResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Restored  bool    `json:"restored"`
	Query     string  `json:"query"`
}

// LayerSpec — декларация слоя maplibre, отдаётся клиенту как есть.
type LayerSpec map[string]interface{}

// MapLayersResponse — источник и слои кластеризованной карты.
type MapLayersResponse struct {
	Source map[string]interface{} `json:"source"`
	Layers []LayerSpec            `json:"layers"`
}

// SelectionResponse — результат выбора первого совпадения поиска:
// перелёт камеры и попап над точкой.
type SelectionResponse struct {
	Waypoint *domain.WaypointWithOwner `json:"waypoint"`
	EaseTo   *domain.EaseToEffect      `json:"easeTo"`
	Popup    *domain.PopupEffect       `json:"popup"`
}
