package domain

// NutritionResult is the structured breakdown returned for one food query.
// Cholesterol and Sodium are optional in the model's output schema and stay
// nil when the model omits them.
type NutritionResult struct {
	FoodName    string   `json:"foodName"`
	ServingSize string   `json:"servingSize"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       float64  `json:"fiber"`
	Sugar       float64  `json:"sugar"`
	Cholesterol *float64 `json:"cholesterol,omitempty"`
	Sodium      *float64 `json:"sodium,omitempty"`
	HealthTip   string   `json:"healthTip"`
}

// Clone returns a deep copy so callers can never mutate a stored result.
func (r *NutritionResult) Clone() *NutritionResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.Cholesterol != nil {
		v := *r.Cholesterol
		c.Cholesterol = &v
	}
	if r.Sodium != nil {
		v := *r.Sodium
		c.Sodium = &v
	}
	return &c
}

// Lifecycle is the status of the most recent submission in a page session.
type Lifecycle int

const (
	LifecycleIdle Lifecycle = iota
	LifecycleInFlight
	LifecycleSucceeded
	LifecycleFailed
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleIdle:
		return "idle"
	case LifecycleInFlight:
		return "in-flight"
	case LifecycleSucceeded:
		return "succeeded"
	case LifecycleFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets Lifecycle appear by name in JSON and log output.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
