package domain

// CellCoverage - счетчики покрытия одной ячейки сетки
type CellCoverage struct {
	Total          int            `json:"total"`
	ByBusinessLine map[string]int `json:"by_business_line,omitempty"`
	ByGrade        map[string]int `json:"by_grade,omitempty"`
}

// GridCell - ячейка сетки покрытия. Ячейки с нулевым покрытием
// в выдачу не попадают (разреженное представление): для рендера
// "нет ячейки" и "ячейка с нулем" - разные состояния.
type GridCell struct {
	Position      Point        `json:"position"`
	Coverage      CellCoverage `json:"coverage"`
	MarketingArea *string      `json:"marketing_area"`
}
