package domain

// Point представляет координаты точки (WGS84, градусы)
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// BoundingBox представляет прямоугольную область
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Contains проверяет, попадает ли точка в прямоугольник
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// City представляет город из справочника
type City struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StringSet - множество строк для multi-select фильтров.
// Пустое множество означает "без ограничений" (см. Filter).
type StringSet map[string]struct{}

// NewStringSet создает множество из списка значений, пропуская пустые строки
func NewStringSet(values []string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Allows возвращает true, если значение проходит фильтр.
// Пустое множество пропускает всё - это задокументированное поведение
// multi-select фильтров: "ничего не выбрано" эквивалентно "выбрано всё".
func (s StringSet) Allows(v string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[v]
	return ok
}

// Empty возвращает true, если множество пустое (фильтр не активен)
func (s StringSet) Empty() bool {
	return len(s) == 0
}

// Values возвращает значения множества (порядок не определен)
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// IntSet - множество целых чисел с той же семантикой, что и StringSet
type IntSet map[int]struct{}

// NewIntSet создает множество из списка значений
func NewIntSet(values []int) IntSet {
	s := make(IntSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Allows возвращает true, если значение проходит фильтр
func (s IntSet) Allows(v int) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[v]
	return ok
}

// Empty возвращает true, если множество пустое (фильтр не активен)
func (s IntSet) Empty() bool {
	return len(s) == 0
}
