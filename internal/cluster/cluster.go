// Package cluster реализует иерархическую кластеризацию точек в стиле
// supercluster: точки проецируются в web mercator, затем для каждого zoom
// сверху вниз жадно объединяются в кластеры в радиусе, заданном в экранных
// пикселях. Семантика expansion zoom и кодирование cluster_id совместимы с
// кластеризованным GeoJSON-источником maplibre.
package cluster

import (
	"math"

	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
)

// Options — параметры индекса. Нулевые значения заменяются дефолтами,
// совпадающими с конфигурацией кластеризованного источника карты:
// radius 50px при extent 512, кластеры до zoom 14 включительно.
type Options struct {
	MinZoom   int
	MaxZoom   int
	Radius    float64
	Extent    float64
	MinPoints int
}

func (o Options) withDefaults() Options {
	if o.MaxZoom == 0 {
		o.MaxZoom = 14
	}
	if o.Radius == 0 {
		o.Radius = 50
	}
	if o.Extent == 0 {
		o.Extent = 512
	}
	if o.MinPoints == 0 {
		o.MinPoints = 2
	}
	return o
}

// clusterPoint — точка одного уровня индекса: либо лист (numPoints == 1,
// source указывает на исходную фичу), либо кластер с закодированным id.
type clusterPoint struct {
	x, y      float64
	id        int // cluster id; -1 для листа
	source    int // индекс исходной точки; -1 для кластера
	parent    int // id родительского кластера уровнем выше; -1 если нет
	numPoints int
}

// Index — неизменяемый кластерный индекс. Потокобезопасен для чтения:
// после New ничего не мутируется.
type Index struct {
	opts   Options
	points []domain.PointFeature
	levels [][]clusterPoint // levels[z], z от MinZoom до MaxZoom+1
}

// New строит индекс по коллекции точечных фич. Построение идёт от
// MaxZoom к MinZoom: уровень MaxZoom+1 содержит только листья.
func New(points []domain.PointFeature, opts Options) *Index {
	opts = opts.withDefaults()

	idx := &Index{
		opts:   opts,
		points: points,
		levels: make([][]clusterPoint, opts.MaxZoom+2),
	}

	leaves := make([]clusterPoint, 0, len(points))
	for i, p := range points {
		leaves = append(leaves, clusterPoint{
			x:         lngX(p.Lng),
			y:         latY(p.Lat),
			id:        -1,
			source:    i,
			parent:    -1,
			numPoints: 1,
		})
	}
	idx.levels[opts.MaxZoom+1] = leaves

	for z := opts.MaxZoom; z >= opts.MinZoom; z-- {
		idx.levels[z] = idx.clusterLevel(idx.levels[z+1], z)
	}

	return idx
}

// clusterLevel жадно объединяет точки уровня z+1 в кластеры радиуса
// Radius/(Extent*2^z). prev мутируется: детям проставляется parent.
func (idx *Index) clusterLevel(prev []clusterPoint, zoom int) []clusterPoint {
	r := idx.opts.Radius / (idx.opts.Extent * math.Exp2(float64(zoom)))
	grid := newGrid(prev, r)

	var next []clusterPoint
	visited := make([]bool, len(prev))

	for i := range prev {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := grid.within(prev, i, r)
		numPoints := prev[i].numPoints
		for _, n := range neighbors {
			if !visited[n] {
				numPoints += prev[n].numPoints
			}
		}

		if numPoints < idx.opts.MinPoints || numPoints == prev[i].numPoints {
			// Точка переходит на уровень ниже как есть.
			carried := prev[i]
			carried.parent = -1
			next = append(next, carried)
			continue
		}

		// Взвешенный центроид по количеству точек.
		id := (i << 5) + zoom + 1
		wx := prev[i].x * float64(prev[i].numPoints)
		wy := prev[i].y * float64(prev[i].numPoints)
		prev[i].parent = id

		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			wx += prev[n].x * float64(prev[n].numPoints)
			wy += prev[n].y * float64(prev[n].numPoints)
			prev[n].parent = id
		}

		next = append(next, clusterPoint{
			x:         wx / float64(numPoints),
			y:         wy / float64(numPoints),
			id:        id,
			source:    -1,
			parent:    -1,
			numPoints: numPoints,
		})
	}

	return next
}

// GetClusters возвращает фичи в bbox на данном zoom. Zoom за пределами
// диапазона индекса отсекается до границ; на MaxZoom+1 кластеров уже нет.
func (idx *Index) GetClusters(west, south, east, north float64, zoom int) []domain.Feature {
	z := zoom
	if z < idx.opts.MinZoom {
		z = idx.opts.MinZoom
	}
	if z > idx.opts.MaxZoom+1 {
		z = idx.opts.MaxZoom + 1
	}

	var out []domain.Feature
	for i := range idx.levels[z] {
		p := &idx.levels[z][i]
		lng, lat := xLng(p.x), yLat(p.y)
		if lat < south || lat > north || !lngInRange(lng, west, east) {
			continue
		}
		out = append(out, idx.toFeature(p))
	}
	return out
}

// GetChildren возвращает составляющие кластера уровнем глубже.
func (idx *Index) GetChildren(clusterID int) ([]domain.Feature, error) {
	originZoom := clusterID % 32
	if originZoom < idx.opts.MinZoom || originZoom > idx.opts.MaxZoom+1 {
		return nil, errors.ErrClusterNotFound
	}

	var children []domain.Feature
	for i := range idx.levels[originZoom] {
		p := &idx.levels[originZoom][i]
		if p.parent == clusterID {
			children = append(children, idx.toFeature(p))
		}
	}
	if len(children) == 0 {
		return nil, errors.ErrClusterNotFound
	}
	return children, nil
}

// GetClusterExpansionZoom возвращает минимальный zoom, на котором кластер
// распадается на составляющие. Не превышает MaxZoom+1.
func (idx *Index) GetClusterExpansionZoom(clusterID int) (int, error) {
	expansionZoom := clusterID%32 - 1
	for expansionZoom <= idx.opts.MaxZoom {
		children, err := idx.GetChildren(clusterID)
		if err != nil {
			return 0, err
		}
		expansionZoom++
		if len(children) != 1 {
			break
		}
		child := children[0]
		if !child.IsCluster() {
			break
		}
		clusterID = child.Cluster.ClusterID
	}
	return expansionZoom, nil
}

func (idx *Index) toFeature(p *clusterPoint) domain.Feature {
	lng, lat := xLng(p.x), yLat(p.y)
	if p.id >= 0 {
		return domain.Feature{Cluster: &domain.ClusterFeature{
			ClusterID:   p.id,
			PointCount:  p.numPoints,
			Abbreviated: domain.AbbreviateCount(p.numPoints),
			Lng:         lng,
			Lat:         lat,
		}}
	}
	src := idx.points[p.source]
	return domain.Feature{Point: &domain.PointFeature{
		ID:   src.ID,
		Name: src.Name,
		Lng:  src.Lng,
		Lat:  src.Lat,
	}}
}

func lngInRange(lng, west, east float64) bool {
	if west <= east {
		return lng >= west && lng <= east
	}
	// bbox через антимеридиан
	return lng >= west || lng <= east
}
