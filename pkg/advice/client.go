// pkg/advice/client.go

package advice

import "github.com/Nano867/prediction-crop/entities"

// Client turns a recommendation into text a grower can read.
type Client interface {
	Summarize(rec *entities.Recommendation) string
}
