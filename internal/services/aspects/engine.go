package aspects

import (
	"math"
	"sort"

	"AstroEngine/internal/domain/models"
	"AstroEngine/pkg/logger"
)

// relSpeedFloor is the relative speed below which two bodies are
// treated as locked together, neither applying nor separating.
const relSpeedFloor = 0.001

// Engine detects angular relationships between point sets. Stateless
// apart from its configuration tables; safe for concurrent use.
type Engine struct {
	orbs   map[models.AspectType]float64
	speeds map[models.Body]float64
	log    *logger.Logger
}

// NewEngine builds an engine with the default orb and speed tables.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		orbs:   DefaultOrbs(),
		speeds: DefaultSpeeds(),
		log:    log,
	}
}

// Options narrow or widen one computation without touching the engine
// tables. A nil Types means the full aspect set; Orbs entries override
// the per-type maximum.
type Options struct {
	Types []models.AspectType
	Orbs  map[models.AspectType]float64
}

// orbFor resolves the effective maximum orb for one aspect type.
func (e *Engine) orbFor(t models.AspectType, opts Options) float64 {
	if o, ok := opts.Orbs[t]; ok {
		return o
	}
	return e.orbs[t]
}

// speedFor falls back to the typical daily motion when the caller has
// no velocity for a body.
func (e *Engine) speedFor(body models.Body, speeds map[models.Body]float64) float64 {
	if s, ok := speeds[body]; ok {
		return s
	}
	return e.speeds[body]
}

// Match tests a single pair against the enabled aspect types and
// returns the closest hit. When a separation falls within the orb of
// more than one type, the smallest measured orb wins, so every pair
// yields at most one aspect.
func (e *Engine) Match(body1, body2 models.Body, lon1, lon2, speed1, speed2 float64, opts Options) (models.AspectMatch, bool) {
	types := opts.Types
	if len(types) == 0 {
		types = allTypes()
	}
	sep := models.AngularSeparation(lon1, lon2)

	best := models.AspectMatch{Orb: math.MaxFloat64}
	found := false
	for _, t := range types {
		angle, ok := aspectAngles[t]
		if !ok {
			continue
		}
		maxOrb := e.orbFor(t, opts)
		orb := math.Abs(sep - angle)
		if orb > maxOrb || orb >= best.Orb {
			continue
		}
		best = models.AspectMatch{
			Body1:     body1,
			Body2:     body2,
			Type:      t,
			Angle:     angle,
			Orb:       orb,
			Applying:  applying(sep, angle, speed1, speed2),
			Influence: 1 - orb/maxOrb,
		}
		found = true
	}
	return best, found
}

// Compute finds all aspects within a single point set. Results are
// ordered by increasing orb, tightest first.
func (e *Engine) Compute(positions map[models.Body]float64, speeds map[models.Body]float64, opts Options) []models.AspectMatch {
	bodies := sortedBodies(positions)
	var matches []models.AspectMatch
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			b1, b2 := bodies[i], bodies[j]
			m, ok := e.Match(b1, b2,
				positions[b1], positions[b2],
				e.speedFor(b1, speeds), e.speedFor(b2, speeds), opts)
			if ok {
				matches = append(matches, m)
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Orb < matches[j].Orb })
	return matches
}

// Synastry crosses two point sets, pairing every body of the first
// with every body of the second.
func (e *Engine) Synastry(set1, set2 map[models.Body]float64, speeds1, speeds2 map[models.Body]float64, opts Options) []models.AspectMatch {
	bodies1 := sortedBodies(set1)
	bodies2 := sortedBodies(set2)
	var matches []models.AspectMatch
	for _, b1 := range bodies1 {
		for _, b2 := range bodies2 {
			m, ok := e.Match(b1, b2,
				set1[b1], set2[b2],
				e.speedFor(b1, speeds1), e.speedFor(b2, speeds2), opts)
			if ok {
				matches = append(matches, m)
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Orb < matches[j].Orb })
	return matches
}

// applying reports whether the faster motion is closing on the exact
// angle. With near-zero relative speed the pair is neither.
func applying(sep, angle, speed1, speed2 float64) bool {
	rel := speed1 - speed2
	if math.Abs(rel) < relSpeedFloor {
		return false
	}
	if sep < angle {
		return rel > 0
	}
	return rel < 0
}

func allTypes() []models.AspectType {
	return []models.AspectType{
		models.Conjunction, models.Opposition, models.Trine, models.Square,
		models.Sextile, models.Quincunx, models.SemiSextile,
		models.SemiSquare, models.Sesquiquadrate, models.Quintile,
	}
}

func sortedBodies(set map[models.Body]float64) []models.Body {
	bodies := make([]models.Body, 0, len(set))
	for b := range set {
		bodies = append(bodies, b)
	}
	sort.Slice(bodies, func(i, j int) bool { return bodies[i] < bodies[j] })
	return bodies
}
