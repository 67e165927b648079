package geo

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/vendormap-service/internal/domain"
)

// rtreeMinChildren/rtreeMaxChildren - параметры ветвления R-дерева
const (
	rtreeMinChildren = 2
	rtreeMaxChildren = 32
)

// pointExtent - вырожденный прямоугольник точки не допускается rtreego,
// поэтому точки индексируются прямоугольником эпсилон-размера
const pointExtent = 1e-9

// vendorEntry - запись индекса вендоров
type vendorEntry struct {
	code string
	pos  domain.Point
	rect rtreego.Rect
}

func (e *vendorEntry) Bounds() rtreego.Rect {
	return e.rect
}

// VendorIndex - R-дерево над координатами вендоров. Строится заново на
// каждый запрос (набор вендоров меняется с фильтром), блокировки не нужны.
// Индекс - грубый фильтр: может вернуть ложноположительные кандидаты,
// но никогда не теряет подходящих; точная проверка остается за вызывающим.
type VendorIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewVendorIndex строит индекс по координатам вендоров, O(n log n)
func NewVendorIndex(vendors []domain.Vendor) *VendorIndex {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	for i := range vendors {
		v := &vendors[i]
		rect, err := rtreego.NewRect(
			rtreego.Point{v.Lng, v.Lat},
			[]float64{pointExtent, pointExtent},
		)
		if err != nil {
			continue
		}
		tree.Insert(&vendorEntry{code: v.Code, pos: v.Position(), rect: rect})
	}
	return &VendorIndex{tree: tree, size: tree.Size()}
}

// Size возвращает число проиндексированных вендоров
func (idx *VendorIndex) Size() int {
	return idx.size
}

// SearchBox возвращает коды вендоров, чьи координаты попадают в прямоугольник
func (idx *VendorIndex) SearchBox(box domain.BoundingBox) []string {
	rect, err := rtreego.NewRect(
		rtreego.Point{box.MinLng, box.MinLat},
		[]float64{box.MaxLng - box.MinLng, box.MaxLat - box.MinLat},
	)
	if err != nil {
		return nil
	}

	matches := idx.tree.SearchIntersect(rect)
	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		codes = append(codes, m.(*vendorEntry).code)
	}
	return codes
}

// layerEntry - запись индекса полигонов слоя
type layerEntry struct {
	index int
	rect  rtreego.Rect
}

func (e *layerEntry) Bounds() rtreego.Rect {
	return e.rect
}

// LayerIndex - R-дерево над ограничивающими прямоугольниками полигонов
// слоя для быстрого поиска области, содержащей точку
type LayerIndex struct {
	tree  *rtreego.Rtree
	areas []domain.AreaPolygon
}

// NewLayerIndex строит индекс по полигонам слоя.
// Слайс полигонов не копируется и не должен изменяться.
func NewLayerIndex(areas []domain.AreaPolygon) *LayerIndex {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	for i := range areas {
		b := areas[i].Bound()
		w := b.Max[0] - b.Min[0]
		h := b.Max[1] - b.Min[1]
		if w <= 0 {
			w = pointExtent
		}
		if h <= 0 {
			h = pointExtent
		}
		rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
		if err != nil {
			continue
		}
		tree.Insert(&layerEntry{index: i, rect: rect})
	}
	return &LayerIndex{tree: tree, areas: areas}
}

// Locate возвращает полигон, содержащий точку, или nil
func (idx *LayerIndex) Locate(p domain.Point) *domain.AreaPolygon {
	i := idx.LocateIndex(p)
	if i < 0 {
		return nil
	}
	return &idx.areas[i]
}

// LocateIndex возвращает индекс полигона, содержащего точку, или -1.
// R-дерево не сохраняет порядок вставки, поэтому кандидаты сортируются
// по исходному индексу: tie-break "первый по порядку слоя" сохраняется.
func (idx *LayerIndex) LocateIndex(p domain.Point) int {
	rect, err := rtreego.NewRect(
		rtreego.Point{p.Lng, p.Lat},
		[]float64{pointExtent, pointExtent},
	)
	if err != nil {
		return -1
	}

	matches := idx.tree.SearchIntersect(rect)
	if len(matches) == 0 {
		return -1
	}

	candidates := make([]int, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m.(*layerEntry).index)
	}
	sort.Ints(candidates)

	pt := orb.Point{p.Lng, p.Lat}
	for _, i := range candidates {
		if planar.MultiPolygonContains(idx.areas[i].Geometry, pt) {
			return i
		}
	}
	return -1
}

// MaxDisplayRadiusKm возвращает максимальный display-радиус по набору
// вендоров; используется для ограничения окна поиска кандидатов сетки
func MaxDisplayRadiusKm(vendors []domain.Vendor) float64 {
	max := 0.0
	for i := range vendors {
		max = math.Max(max, vendors[i].DisplayRadiusKm)
	}
	return max
}
