package cluster

import "math"

// Проекция web mercator в единичный квадрат [0..1] и обратно.

func lngX(lng float64) float64 {
	return lng/360 + 0.5
}

func latY(lat float64) float64 {
	sin := math.Sin(lat * math.Pi / 180)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		return 0
	}
	if y > 1 {
		return 1
	}
	return y
}

func xLng(x float64) float64 {
	return (x - 0.5) * 360
}

func yLat(y float64) float64 {
	y2 := (180 - y*360) * math.Pi / 180
	return 360*math.Atan(math.Exp(y2))/math.Pi - 90
}

// grid — равномерная сетка с ячейкой размером в радиус кластеризации.
// Поиск соседей смотрит 3x3 ячейки вокруг точки.
type grid struct {
	cells    map[[2]int][]int
	cellSize float64
}

func newGrid(points []clusterPoint, cellSize float64) *grid {
	g := &grid{
		cells:    make(map[[2]int][]int, len(points)),
		cellSize: cellSize,
	}
	for i, p := range points {
		key := g.key(p.x, p.y)
		g.cells[key] = append(g.cells[key], i)
	}
	return g
}

func (g *grid) key(x, y float64) [2]int {
	return [2]int{int(math.Floor(x / g.cellSize)), int(math.Floor(y / g.cellSize))}
}

// within возвращает индексы точек в радиусе r от points[center], не включая
// её саму. Порядок стабилен (по ячейкам слева направо, внутри — по индексу
// вставки), что делает кластеризацию детерминированной.
func (g *grid) within(points []clusterPoint, center int, r float64) []int {
	c := points[center]
	key := g.key(c.x, c.y)
	r2 := r * r

	var result []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, i := range g.cells[[2]int{key[0] + dx, key[1] + dy}] {
				if i == center {
					continue
				}
				ddx := points[i].x - c.x
				ddy := points[i].y - c.y
				if ddx*ddx+ddy*ddy <= r2 {
					result = append(result, i)
				}
			}
		}
	}
	return result
}
