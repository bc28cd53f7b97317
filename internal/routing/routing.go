// Package routing turns a screening score into a pipeline path.
package routing

type Path string

const (
	Accept Path = "accept"
	Reject Path = "reject"
)

const (
	DefaultAcceptThreshold = 70
	DefaultReviewLow       = 65
	DefaultReviewHigh      = 75
	DefaultHighScore       = 80
	DefaultMaxGaps         = 2
)

type Config struct {
	AcceptThreshold int `mapstructure:"accept-threshold"`
	// ReviewLow and ReviewHigh bound the borderline band, both inclusive.
	ReviewLow  int `mapstructure:"review-low"`
	ReviewHigh int `mapstructure:"review-high"`
	// A score of at least HighScore with more than MaxGaps gaps is suspicious.
	HighScore int `mapstructure:"high-score"`
	MaxGaps   int `mapstructure:"max-gaps"`
}

func DefaultConfig() Config {
	return Config{
		AcceptThreshold: DefaultAcceptThreshold,
		ReviewLow:       DefaultReviewLow,
		ReviewHigh:      DefaultReviewHigh,
		HighScore:       DefaultHighScore,
		MaxGaps:         DefaultMaxGaps,
	}
}

type Router struct {
	cfg Config
}

func New(cfg Config) Router {
	return Router{cfg: cfg}
}

func (r Router) Config() Config {
	return r.cfg
}

// Route accepts iff the score reaches the accept threshold.
func (r Router) Route(score int) Path {
	if score >= r.cfg.AcceptThreshold {
		return Accept
	}
	return Reject
}

// NeedsHumanReview flags borderline scores and high scores with many gaps.
func (r Router) NeedsHumanReview(score, gapCount int) bool {
	if score >= r.cfg.ReviewLow && score <= r.cfg.ReviewHigh {
		return true
	}
	return score >= r.cfg.HighScore && gapCount > r.cfg.MaxGaps
}
