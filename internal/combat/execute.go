package combat

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// maxCombatRounds caps a session: an engagement neither side can finish
// ends as survival without victory rather than spinning forever.
const maxCombatRounds = 40

// opponentSeedSalt decorrelates opponent generation from combat
// resolution so both can draw from the same caller-supplied seed.
const opponentSeedSalt = 0x5DEECE66D

// ExecutionResult is everything one combat session produces: the
// operator's post-combat snapshot, the ending flags, and the
// deterministic battle log. Two calls with the same (snapshot, seed)
// return equal results, log included.
type ExecutionResult struct {
	Result        OperatorSnapshot
	IsVictory     bool
	OperatorDied  bool
	BattleLog     []BattleLogEntry
	TurnsSurvived int
	DamageTaken   float64
}

// Execute runs one full combat session for the operator described by
// the snapshot against a generated opponent. It is the single entry
// point for live play and replay verification alike: every piece of
// state the session needs comes from (snapshot, seed), nothing from
// ambient sources.
func Execute(snapshot OperatorSnapshot, seed int64) (ExecutionResult, error) {
	return ExecuteWithLogger(snapshot, seed, zerolog.Nop())
}

// ExecuteWithLogger is Execute with an operational logger attached for
// diagnostics. The logger never influences the outcome.
func ExecuteWithLogger(snapshot OperatorSnapshot, seed int64, logger zerolog.Logger) (ExecutionResult, error) {
	player, err := snapshot.Restore()
	if err != nil {
		return ExecutionResult{}, err
	}
	opponent := generateOpponent(seed, player)

	round := NewCombatRound(player, opponent, seed)
	round.SetLogger(logger)
	startHealth := player.Health

	logger.Info().
		Int64("seed", seed).
		Str("operator", player.Name).
		Str("opponent", opponent.Name).
		Float64("distance_m", player.DistanceM).
		Msg("combat session starting")

	for turn := 0; turn < maxCombatRounds && round.Phase() == PhasePlanning; turn++ {
		// Intents are requested player-first every round; the policy
		// draws from the shared RNG, so this order is part of the
		// deterministic contract.
		for _, op := range [2]*Operator{player, opponent} {
			in := round.AutoIntentFor(op.ID)
			if res := round.SubmitIntents(op.ID, in); res.Status != IntentAccepted {
				logger.Debug().
					Str("operator", op.Name).
					Str("reason", res.Reason).
					Msg("intent rejected, holding")
				round.SubmitIntents(op.ID, Intent{Posture: PostureHold})
			}
		}
		if err := round.BeginExecution(); err != nil {
			return ExecutionResult{}, err
		}
		if _, err := round.ExecuteUntilReactionWindow(); err != nil {
			return ExecutionResult{}, err
		}
	}

	died := !player.Alive()
	victory := player.Alive() && !opponent.Alive()

	logger.Info().
		Bool("victory", victory).
		Bool("died", died).
		Int("turns", round.TurnsCompleted()).
		Float64("health_remaining", player.Health).
		Msg("combat session over")

	return ExecutionResult{
		Result:        CaptureSnapshot(player),
		IsVictory:     victory,
		OperatorDied:  died,
		BattleLog:     round.Log().Entries(),
		TurnsSurvived: round.TurnsCompleted(),
		DamageTaken:   startHealth - player.Health,
	}, nil
}

// opponentNames is the fixed roster opposition is drawn from. Indexing
// is seeded, so the list order matters.
var opponentNames = []string{
	"Vostok", "Kessler", "Aldana", "Brandt", "Okafor", "Lindqvist",
}

// generateOpponent builds the adversary for a session. Its RNG is
// derived from the session seed with a fixed salt so opponent stats
// replay exactly without the generation draws shifting combat
// resolution draws.
func generateOpponent(seed int64, player *Operator) *Operator {
	rng := rand.New(rand.NewSource(seed ^ opponentSeedSalt)) // #nosec G404 -- determinism is the point

	name := opponentNames[rng.Intn(len(opponentNames))]
	weapons := WeaponNames()
	w := WeaponByName(weapons[rng.Intn(len(weapons))])

	op := NewOperator(player.ID+1, name, w, player.DistanceM)
	op.Accuracy = 0.60 + rng.Float64()*0.25
	op.AccuracyProficiency = 0.50 + rng.Float64()*0.30
	op.FlinchResistance = 35 + rng.Float64()*30
	return op
}
