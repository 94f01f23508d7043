package advice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Nano867/prediction-crop/entities"
)

// DescribeRules lists, per crop, the planting months, ideal temperature range
// and soils the recommendation rules use.
func DescribeRules(crops []entities.Crop) string {
	var sb strings.Builder
	sb.WriteString("Prediction rules (editable):\n\n")
	for _, c := range crops {
		months := make([]string, len(c.PlantingMonths))
		for i, m := range c.PlantingMonths {
			months[i] = strconv.Itoa(m)
		}
		fmt.Fprintf(&sb, "%s\n - months: %s\n - temp: %s °C\n - soils: %s\n\n",
			c.Name, strings.Join(months, ", "), c.IdealRange(), c.SoilsDisplay())
	}
	return sb.String()
}
