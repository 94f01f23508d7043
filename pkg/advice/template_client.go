// pkg/advice/template_client.go

package advice

import (
	"fmt"
	"strings"

	"github.com/Nano867/prediction-crop/entities"
)

type templateClient struct{}

// NewTemplate returns the offline summarizer. It never fails.
func NewTemplate() Client { return &templateClient{} }

func (templateClient) Summarize(rec *entities.Recommendation) string {
	return renderSummary(rec)
}

func renderSummary(rec *entities.Recommendation) string {
	if rec == nil {
		return ""
	}
	var sb strings.Builder
	if !rec.RegionKnown {
		fmt.Fprintf(&sb, "Unknown region %q. Pick one of the listed regions.", rec.Region)
		return sb.String()
	}

	temp := formatRegionTemp(rec.RegionTemperature)
	if len(rec.Matches) == 0 {
		sb.WriteString("No strong match found.\n")
		fmt.Fprintf(&sb, "Region average temp: %s (month: %s).\n", temp, rec.MonthName)
		sb.WriteString("Consider soil test and local irrigation before planting.")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Recommended crops for %s (%s) - %s\n", rec.Region, rec.Zone, rec.MonthName)
	fmt.Fprintf(&sb, "Region mean temperature: %s\n", temp)
	for _, m := range rec.Matches {
		fmt.Fprintf(&sb, "- %s: match score %d. Ideal temp: %s °C. Water: %s. Soils: %s.\n",
			m.Name, m.Score, m.IdealRange, m.WaterNeed, m.Soils)
	}
	sb.WriteString("Note: this is a rule-based recommendation. Replace the sample temperatures with measured values for higher accuracy.")
	return sb.String()
}

func formatRegionTemp(t *float64) string {
	if t == nil {
		return "unknown"
	}
	return entities.FormatTemp(*t) + " °C"
}
