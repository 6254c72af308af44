package domain

import (
	"fmt"
	"math"
)

// PointFeature — некластеризованный waypoint на карте. Несёт только id и
// name: коллекция фич — проекция списка waypoints, а не отдельное хранилище.
type PointFeature struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

// ClusterFeature — агрегат близких точек ниже порогового zoom.
type ClusterFeature struct {
	ClusterID   int     `json:"cluster_id"`
	PointCount  int     `json:"point_count"`
	Abbreviated string  `json:"point_count_abbreviated"`
	Lng         float64 `json:"lng"`
	Lat         float64 `json:"lat"`
}

// Feature — tagged union: ровно одно из полей не nil. Валидация свойств фичи
// происходит один раз на границе с кластерным индексом, а не в каждом
// обработчике кликов.
type Feature struct {
	Point   *PointFeature
	Cluster *ClusterFeature
}

func (f Feature) IsCluster() bool {
	return f.Cluster != nil
}

func (f Feature) Coordinates() (lng, lat float64) {
	if f.Cluster != nil {
		return f.Cluster.Lng, f.Cluster.Lat
	}
	if f.Point != nil {
		return f.Point.Lng, f.Point.Lat
	}
	return 0, 0
}

// ProjectWaypoints строит коллекцию точечных фич из списка waypoints:
// по одной точке на waypoint, свойства — только id и name.
func ProjectWaypoints(waypoints []Waypoint) []PointFeature {
	features := make([]PointFeature, 0, len(waypoints))
	for _, wp := range waypoints {
		features = append(features, PointFeature{
			ID:   wp.ID,
			Name: wp.Name,
			Lng:  wp.Longitude,
			Lat:  wp.Latitude,
		})
	}
	return features
}

// AbbreviateCount форматирует количество точек так же, как supercluster
// считает point_count_abbreviated (round(n/100)/10): 999 -> "999",
// 1200 -> "1.2k", 1950 -> "2k".
func AbbreviateCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	abbrev := math.Round(float64(n)/100) / 10
	if abbrev == math.Trunc(abbrev) {
		return fmt.Sprintf("%dk", int(abbrev))
	}
	return fmt.Sprintf("%.1fk", abbrev)
}
