package game

// The effect scheduler is a fixed, priority-ordered list of reveal
// pipeline stages. Each stage watches a queued track and fires exactly
// one promotion action when its gate clears. Stages never mutate state;
// they only emit actions back through the reducer.

// PipelineStage is one rule of the reveal pipeline.
type PipelineStage struct {
	// StageName identifies the rule in logs and tests.
	StageName string

	// CanPromote reports whether the stage's queued value exists and
	// its gate is clear.
	CanPromote func(s *GameState) bool

	// Promote returns the single promotion action for this stage.
	Promote func(s *GameState) Action
}

// RevealPipeline lists the stages in precedence order: artifact reveal,
// then notification flush, then turn handover, then game finish.
// Movement start, dice completion and card dismissal are timer-driven
// and do not appear here.
var RevealPipeline = []PipelineStage{
	{
		StageName: "promote-artifact",
		CanPromote: func(s *GameState) bool {
			return s.ActiveArtifact == nil &&
				len(s.QueuedArtifacts) > 0 &&
				!isAnimBusy(s)
		},
		Promote: func(s *GameState) Action { return ActionPromoteArtifact{} },
	},
	{
		StageName: "flush-notifs",
		CanPromote: func(s *GameState) bool {
			// Balance changes become visible only once every artifact
			// that explains them has been revealed and dismissed.
			return len(s.PendingNotifs) > 0 &&
				!isAnimBusy(s) &&
				len(s.QueuedArtifacts) == 0 &&
				s.ActiveArtifact == nil
		},
		Promote: func(s *GameState) Action { return ActionFlushNotifs{} },
	},
	{
		StageName: "promote-turn-change",
		CanPromote: func(s *GameState) bool {
			// Narrow gate: a stuck dice clip must not block the turn.
			return s.QueuedTurnChange != nil &&
				!isMoveBusy(s) &&
				len(s.QueuedArtifacts) == 0 &&
				s.ActiveArtifact == nil
		},
		Promote: func(s *GameState) Action { return ActionPromoteTurnChange{} },
	},
	{
		StageName: "promote-game-finished",
		CanPromote: func(s *GameState) bool {
			return s.QueuedGameFinished != nil &&
				!isMoveBusy(s) &&
				len(s.QueuedArtifacts) == 0 &&
				s.ActiveArtifact == nil &&
				s.QueuedTurnChange == nil &&
				len(s.PendingNotifs) == 0
		},
		Promote: func(s *GameState) Action { return ActionPromoteGameFinished{} },
	},
}

// NextPromotion evaluates the pipeline in order and returns the first
// promotion that is ready, or nil when nothing can promote.
func NextPromotion(s *GameState) (Action, string) {
	for _, stage := range RevealPipeline {
		if stage.CanPromote(s) {
			return stage.Promote(s), stage.StageName
		}
	}
	return nil, ""
}
