package usecase

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/config"
	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/pkg/errors"
	"github.com/vendormap-service/internal/pkg/validator"
	"github.com/vendormap-service/internal/usecase/dto"
)

const dateLayout = "2006-01-02"

// FilterResolver - use case нормализации сырых параметров запроса
// в Filter. Любая ошибка нормализации фатальна для запроса:
// частично применённый фильтр не возвращается никогда.
type FilterResolver struct {
	cities map[string]config.CityConfig
	logger *zap.Logger
}

// NewFilterResolver создает новый FilterResolver
func NewFilterResolver(cities map[string]config.CityConfig, logger *zap.Logger) *FilterResolver {
	return &FilterResolver{
		cities: cities,
		logger: logger,
	}
}

// Resolve валидирует и нормализует запрос map-data
func (r *FilterResolver) Resolve(req *dto.MapDataRequest) (*domain.Filter, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidFilter.WithMessage("%s", err.Error())
	}

	city := strings.ToLower(strings.TrimSpace(req.City))
	if city == "" {
		city = "tehran"
	}
	if _, ok := r.cities[city]; !ok {
		return nil, errors.ErrInvalidFilter.WithMessage("unknown city: %s", city)
	}

	f := &domain.Filter{
		City:          city,
		BusinessLines: domain.NewStringSet(cleanValues(req.BusinessLines)),
		Grades:        domain.NewStringSet(cleanValues(req.VendorGrades)),
		VendorCodes:   domain.NewStringSet(splitCodes(req.VendorCodesFilter)),
	}

	statusIDs, err := parseStatusIDs(req.VendorStatusIDs)
	if err != nil {
		return nil, err
	}
	f.StatusIDs = statusIDs

	f.DateFrom, f.DateTo, err = parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	f.Visible, err = parseTriState("vendor_visible", req.VendorVisible)
	if err != nil {
		return nil, err
	}
	f.Open, err = parseTriState("vendor_is_open", req.VendorIsOpen)
	if err != nil {
		return nil, err
	}

	f.VendorAreaLayer = normalizeLayer(req.VendorAreaMainType, domain.VendorAreaAll)
	f.VendorAreaNames = domain.NewStringSet(cleanValues(req.VendorAreaSubTypes))
	if err := validateLayer("vendor_area_main_type", f.VendorAreaLayer, true); err != nil {
		return nil, err
	}

	f.DisplayLayer = normalizeLayer(req.AreaTypeDisplay, domain.DisplayNone)
	f.DisplayNames = domain.NewStringSet(cleanValues(req.AreaSubTypeFilter))
	if err := validateLayer("area_type_display", f.DisplayLayer, false); err != nil {
		return nil, err
	}

	heatmap := domain.HeatmapType(strings.TrimSpace(req.HeatmapType))
	if heatmap == "" {
		heatmap = domain.HeatmapNone
	}
	if !heatmap.Valid() {
		return nil, errors.ErrInvalidFilter.WithMessage("unknown heatmap type: %s", heatmap)
	}
	f.Heatmap = heatmap

	if err := resolveRadius(f, req); err != nil {
		return nil, err
	}

	return f, nil
}

// resolveRadius подставляет дефолты и проверяет границы радиусных параметров
func resolveRadius(f *domain.Filter, req *dto.MapDataRequest) error {
	mode := domain.RadiusMode(req.RadiusMode)
	if mode == "" {
		mode = domain.RadiusPercentage
	}
	f.RadiusMode = mode

	f.RadiusModifier = req.RadiusModifier
	if f.RadiusModifier == 0 {
		f.RadiusModifier = domain.MaxRadiusModifier
	}
	f.RadiusFixedKm = req.RadiusFixed
	if f.RadiusFixedKm == 0 {
		f.RadiusFixedKm = 3.0
	}

	if f.RadiusModifier < domain.MinRadiusModifier || f.RadiusModifier > domain.MaxRadiusModifier {
		return errors.ErrInvalidFilter.WithMessage("radius_modifier out of range")
	}
	if f.RadiusFixedKm < domain.MinRadiusFixedKm || f.RadiusFixedKm > domain.MaxRadiusFixedKm {
		return errors.ErrInvalidFilter.WithMessage("radius_fixed out of range")
	}
	return nil
}

// parseDateRange разбирает границы диапазона дат; конец диапазона
// расширяется до конца суток, чтобы обе даты были включительными
func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, nil, errors.ErrInvalidFilter.WithMessage("invalid start_date: %s", s)
		}
		from = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, nil, errors.ErrInvalidFilter.WithMessage("invalid end_date: %s", s)
		}
		eod := t.Add(24*time.Hour - time.Nanosecond)
		to = &eod
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, errors.ErrInvalidFilter.WithMessage("end_date is before start_date")
	}
	return from, to, nil
}

// parseTriState переводит строковый параметр any/1/0 в TriState
func parseTriState(name, raw string) (domain.TriState, error) {
	switch strings.TrimSpace(raw) {
	case "", "any":
		return domain.TriAny, nil
	case "1":
		return domain.TriYes, nil
	case "0":
		return domain.TriNo, nil
	}
	return domain.TriAny, errors.ErrInvalidFilter.WithMessage("invalid %s: %s", name, raw)
}

// parseStatusIDs фильтрует нечисловые значения статусов как некорректный ввод
func parseStatusIDs(raw []string) (domain.IntSet, error) {
	ids := make([]int, 0, len(raw))
	for _, s := range cleanValues(raw) {
		id, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.ErrInvalidFilter.WithMessage("invalid vendor_status_ids value: %s", s)
		}
		ids = append(ids, id)
	}
	return domain.NewIntSet(ids), nil
}

// normalizeLayer приводит имя слоя, подставляя дефолт для пустого значения
func normalizeLayer(raw, def string) string {
	layer := strings.ToLower(strings.TrimSpace(raw))
	if layer == "" {
		return def
	}
	return layer
}

// validateLayer проверяет, что имя слоя известно сервису.
// Для display-слоя вместо "all" допускаются none и coverage_grid.
func validateLayer(name, layer string, vendorFilter bool) error {
	switch layer {
	case domain.LayerMarketingAreas, domain.LayerTehranRegion, domain.LayerTehranMain, domain.LayerAllTehran:
		return nil
	case domain.VendorAreaAll:
		if vendorFilter {
			return nil
		}
	case domain.DisplayNone, domain.DisplayCoverageGrid:
		if !vendorFilter {
			return nil
		}
	}
	return errors.ErrInvalidFilter.WithMessage("invalid %s: %s", name, layer)
}

// splitCodes разбивает свободный ввод кодов вендоров по пробелам,
// запятым и точкам с запятой
func splitCodes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return cleanValues(fields)
}

// cleanValues убирает пустые и "all" значения из multi-select параметра:
// оба варианта означают отсутствие ограничения
func cleanValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, "all") {
			continue
		}
		out = append(out, v)
	}
	return out
}
