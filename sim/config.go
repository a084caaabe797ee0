package sim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config groups the population and run parameters of one simulation.
type Config struct {
	// NumSeekers is the population size.
	NumSeekers int `yaml:"num_seekers" json:"num_seekers" validate:"gt=0"`
	// NumJobs is the number of listings, fixed for all runs.
	NumJobs int `yaml:"num_jobs" json:"num_jobs" validate:"gt=0"`
	// Skills names the feature-vector columns.
	Skills        []string `yaml:"skills" json:"skills" validate:"min=1,unique,dive,required"`
	TreatmentProb float64  `yaml:"treatment_prob" json:"treatment_prob" validate:"gte=0,lte=1"`
	// NumRuns counts the repeated runs after the baseline.
	NumRuns int `yaml:"num_runs" json:"num_runs" validate:"gt=0"`
}

// DefaultConfig returns the reference parameters: 200 seekers, 50 jobs,
// 10 skills, p(treated)=0.5, 100 runs.
func DefaultConfig() Config {
	return Config{
		NumSeekers:    200,
		NumJobs:       50,
		Skills:        slices.Clone(DefaultSkills),
		TreatmentProb: 0.5,
		NumRuns:       100,
	}
}

var validate = validator.New()

// Validate checks field ranges. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
