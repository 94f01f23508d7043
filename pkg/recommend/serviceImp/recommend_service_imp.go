package serviceImp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Nano867/prediction-crop/entities"
	"github.com/Nano867/prediction-crop/pkg/advice"
	"github.com/Nano867/prediction-crop/pkg/climate"
	"github.com/Nano867/prediction-crop/pkg/observability"
	"github.com/Nano867/prediction-crop/pkg/recommend/service"
)

type catalog interface {
	climate.Reference
	Region(name string) (entities.Region, bool)
	Regions() []entities.Region
	Zones() []entities.ClimateZone
	ZoneTemperatures(zone entities.ClimateZone) ([12]float64, bool)
}

type AdvisorSvc struct {
	cat     catalog
	rules   climate.RulesEngine
	adv     advice.Client
	metrics *observability.Metrics
	log     *zap.Logger
}

var _ service.RecommendService = (*AdvisorSvc)(nil)

func NewAdvisorService(cat catalog, adv advice.Client, m *observability.Metrics, log *zap.Logger) *AdvisorSvc {
	if adv == nil {
		adv = advice.NewTemplate()
	}
	if m == nil {
		m = observability.NewMetricsForTesting()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AdvisorSvc{cat: cat, rules: climate.NewRules(cat), adv: adv, metrics: m, log: log}
}

func (s *AdvisorSvc) Recommend(region string, month int) (*entities.Recommendation, error) {
	if month < 1 || month > 12 {
		s.metrics.Evaluations.WithLabelValues("invalid_month").Inc()
		return nil, fmt.Errorf("recommend for %q: %w: got %d", region, climate.ErrInvalidMonth, month)
	}

	rec := &entities.Recommendation{
		Region:    region,
		Month:     month,
		MonthName: entities.MonthName(month),
		Matches:   []entities.EvaluationResult{},
	}

	r, ok := s.cat.Region(region)
	if !ok {
		s.metrics.Evaluations.WithLabelValues("unknown_region").Inc()
		s.log.Debug("unknown region", zap.String("region", region), zap.Int("month", month))
		rec.Summary = s.adv.Summarize(rec)
		return rec, nil
	}

	ev, err := s.rules.Evaluate(r.Zone, month)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s/%d: %w", r.Zone, month, err)
	}

	rec.Region = r.Name
	rec.RegionKnown = true
	rec.Zone = r.Zone
	rec.RegionTemperature = ev.RegionTemperature
	rec.Matches = ev.Matches

	outcome := "matched"
	if len(ev.Matches) == 0 {
		outcome = "no_match"
	}
	s.metrics.Evaluations.WithLabelValues(outcome).Inc()
	s.metrics.MatchesPerResult.Observe(float64(len(ev.Matches)))
	s.log.Debug("evaluated",
		zap.String("region", r.Name),
		zap.String("zone", string(r.Zone)),
		zap.Int("month", month),
		zap.Int("matches", len(ev.Matches)))

	rec.Summary = s.adv.Summarize(rec)
	return rec, nil
}

func (s *AdvisorSvc) Regions() []entities.Region { return s.cat.Regions() }

func (s *AdvisorSvc) Crops() []entities.Crop { return s.cat.Crops() }

func (s *AdvisorSvc) Zones() []entities.ZoneTable {
	zones := s.cat.Zones()
	out := make([]entities.ZoneTable, 0, len(zones))
	for _, z := range zones {
		if row, ok := s.cat.ZoneTemperatures(z); ok {
			out = append(out, entities.ZoneTable{Zone: z, Temperatures: row})
		}
	}
	return out
}

func (s *AdvisorSvc) Rules() string { return advice.DescribeRules(s.cat.Crops()) }
