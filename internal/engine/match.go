package engine

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Default tuning values.
const (
	DefaultGoalCeiling         = 6
	DefaultZeroBumpProbability = 0.35
)

// Params holds the presentation tunables of the match model.
type Params struct {
	// GoalCeiling caps regulation goals per side; a tie-break may add one more.
	GoalCeiling int
	// ZeroBumpProbability is the chance a scoreless side is nudged to one goal.
	ZeroBumpProbability float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		GoalCeiling:         DefaultGoalCeiling,
		ZeroBumpProbability: DefaultZeroBumpProbability,
	}
}

func (p Params) normalized() Params {
	if p.GoalCeiling <= 0 {
		p.GoalCeiling = DefaultGoalCeiling
	}
	// a side can never score more goals than there are free minutes
	if p.GoalCeiling > LastMinute/2-1 {
		p.GoalCeiling = LastMinute/2 - 1
	}
	if p.ZeroBumpProbability < 0 {
		p.ZeroBumpProbability = 0
	}
	if p.ZeroBumpProbability > 1 {
		p.ZeroBumpProbability = 1
	}
	return p
}

// Simulator resolves single matches. It is not safe for concurrent use
// because it shares one random source.
type Simulator struct {
	rng    Rand
	params Params
	now    func() time.Time
}

// NewSimulator builds a Simulator over rng.
func NewSimulator(rng Rand, params Params) *Simulator {
	return &Simulator{
		rng:    rng,
		params: params.normalized(),
		now:    time.Now,
	}
}

// Params returns the effective tuning.
func (s *Simulator) Params() Params {
	return s.params
}

// SimulateMatch plays a to b and returns the resolved result. The result is
// never a draw; Stage, Slot and RunID are left for the caller to fill in.
func (s *Simulator) SimulateMatch(a, b models.Team) models.MatchResult {
	scoreA := s.bumpZero(GoalCount(s.rng, a.Strength(), s.params.GoalCeiling))
	scoreB := s.bumpZero(GoalCount(s.rng, b.Strength(), s.params.GoalCeiling))

	used := make(map[int]bool, scoreA+scoreB+1)
	minutesA := uniqueMinutesExcluding(s.rng, scoreA, used)
	markUsed(used, minutesA)
	minutesB := uniqueMinutesExcluding(s.rng, scoreB, used)
	markUsed(used, minutesB)

	scorersA := s.attribute(a, minutesA)
	scorersB := s.attribute(b, minutesB)

	tieBreak := false
	if scoreA == scoreB {
		tieBreak = true
		minute := uniqueMinutesExcluding(s.rng, 1, used)[0]
		if s.rng.Float64() < tieBreakShare(a, b) {
			scoreA++
			scorersA = insertByMinute(scorersA, models.ScorerEvent{Team: a.Country, Player: PickScorer(s.rng, a), Minute: minute})
		} else {
			scoreB++
			scorersB = insertByMinute(scorersB, models.ScorerEvent{Team: b.Country, Player: PickScorer(s.rng, b), Minute: minute})
		}
		tieBreaksTotal.Inc()
	}

	winner := a.Country
	if scoreB > scoreA {
		winner = b.Country
	}

	all := make([]models.ScorerEvent, 0, len(scorersA)+len(scorersB))
	all = append(all, scorersA...)
	all = append(all, scorersB...)
	slices.SortFunc(all, func(x, y models.ScorerEvent) int { return x.Minute - y.Minute })

	matchesSimulated.Inc()
	goalsScored.Add(float64(scoreA + scoreB))

	return models.MatchResult{
		ID:        uuid.New(),
		TeamA:     a.Country,
		TeamB:     b.Country,
		ScoreA:    scoreA,
		ScoreB:    scoreB,
		Scorers:   all,
		ScorersA:  scorersA,
		ScorersB:  scorersB,
		Winner:    winner,
		TieBreak:  tieBreak,
		Simulated: true,
		CreatedAt: s.now().UTC(),
	}
}

func (s *Simulator) bumpZero(goals int) int {
	if goals == 0 && s.rng.Float64() < s.params.ZeroBumpProbability {
		return 1
	}
	return goals
}

func (s *Simulator) attribute(team models.Team, minutes []int) []models.ScorerEvent {
	events := make([]models.ScorerEvent, 0, len(minutes)+1)
	for _, m := range minutes {
		events = append(events, models.ScorerEvent{
			Team:   team.Country,
			Player: PickScorer(s.rng, team),
			Minute: m,
		})
	}
	return events
}

// tieBreakShare is a's probability of taking the deciding goal.
func tieBreakShare(a, b models.Team) float64 {
	ra, rb := float64(a.Strength()), float64(b.Strength())
	return ra / (ra + rb)
}

func markUsed(used map[int]bool, minutes []int) {
	for _, m := range minutes {
		used[m] = true
	}
}

func insertByMinute(events []models.ScorerEvent, ev models.ScorerEvent) []models.ScorerEvent {
	i, _ := slices.BinarySearchFunc(events, ev.Minute, func(e models.ScorerEvent, m int) int { return e.Minute - m })
	return slices.Insert(events, i, ev)
}
