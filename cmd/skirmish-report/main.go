package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/archanox/GUNRPG-sub001/internal/combat"
	"github.com/archanox/GUNRPG-sub001/internal/config"
	"github.com/archanox/GUNRPG-sub001/internal/logger"
	"github.com/archanox/GUNRPG-sub001/internal/store"
)

type runStats struct {
	runIndex int
	seed     int64

	victory       bool
	died          bool
	turnsSurvived int
	damageTaken   float64
	logEntries    int
	resultHash    string
	replayOK      bool
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var configDir string
	var dbPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 0, "number of combat sessions (0 = from config)")
	flag.Int64Var(&seedBase, "seed-base", 0, "RNG seed for run 1 (0 = from config)")
	flag.Int64Var(&seedStep, "seed-step", 0, "seed increment between runs (0 = from config)")
	flag.StringVar(&configDir, "config-dir", ".", "directory holding skirmish.cfg.json")
	flag.StringVar(&dbPath, "db", "", "SQLite path for battle records (overrides config)")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if runs > 0 {
		cfg.Runs = runs
	}
	if seedBase != 0 {
		cfg.SeedBase = seedBase
	}
	if seedStep != 0 {
		cfg.SeedStep = seedStep
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.NewConsole(cfg.LogLevel)

	var battleStore *store.Store
	if cfg.DBPath != "" {
		battleStore, err = store.Open(cfg.DBPath, log)
		if err != nil {
			log.Fatal().Err(err).Msg("opening battle store")
		}
	}

	snapshot := combat.OperatorSnapshot{
		OperatorID:          1,
		Name:                cfg.Operator.Name,
		Health:              combat.DefaultMaxHealth,
		MaxHealth:           combat.DefaultMaxHealth,
		Accuracy:            cfg.Operator.Accuracy,
		AccuracyProficiency: cfg.Operator.AccuracyProficiency,
		FlinchResistance:    combat.DefaultFlinchResistance,
		Ammo:                combat.WeaponByName(cfg.Operator.Weapon).MagazineSize,
		WeaponName:          cfg.Operator.Weapon,
		DistanceM:           cfg.Operator.DistanceM,
	}
	if err := snapshot.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configured operator is invalid")
	}

	fmt.Printf("=== Skirmish Report ===\n")
	fmt.Printf("operator=%s weapon=%s distance=%.1fm runs=%d seed_base=%d seed_step=%d\n\n",
		snapshot.Name, snapshot.WeaponName, snapshot.DistanceM, cfg.Runs, cfg.SeedBase, cfg.SeedStep)

	all := make([]runStats, 0, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		seed := cfg.SeedBase + int64(i)*cfg.SeedStep
		stats, res, err := runSession(log, snapshot, i+1, seed)
		if err != nil {
			log.Fatal().Err(err).Int64("seed", seed).Msg("combat session failed")
		}
		all = append(all, stats)
		printRun(stats)

		if battleStore != nil {
			if err := battleStore.SaveSession(uuid.New(), snapshot, seed, res); err != nil {
				log.Error().Err(err).Int64("seed", seed).Msg("saving battle record")
			}
		}
	}

	printAggregate(all)
}

// runSession executes one combat session, then immediately re-executes
// it to verify the replay contract: same snapshot and seed must yield
// the same result hash and the same battle log.
func runSession(log zerolog.Logger, snapshot combat.OperatorSnapshot, runIndex int, seed int64) (runStats, combat.ExecutionResult, error) {
	res, err := combat.ExecuteWithLogger(snapshot, seed, log)
	if err != nil {
		return runStats{}, combat.ExecutionResult{}, err
	}

	replay, err := combat.Execute(snapshot, seed)
	if err != nil {
		return runStats{}, combat.ExecutionResult{}, err
	}
	replayOK := replay.Result.Hash() == res.Result.Hash() &&
		len(replay.BattleLog) == len(res.BattleLog)
	if replayOK {
		for i := range res.BattleLog {
			if res.BattleLog[i] != replay.BattleLog[i] {
				replayOK = false
				break
			}
		}
	}
	if !replayOK {
		log.Warn().Int64("seed", seed).Msg("replay verification FAILED")
	}

	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		victory:       res.IsVictory,
		died:          res.OperatorDied,
		turnsSurvived: res.TurnsSurvived,
		damageTaken:   res.DamageTaken,
		logEntries:    len(res.BattleLog),
		resultHash:    res.Result.Hash(),
		replayOK:      replayOK,
	}, res, nil
}

func printRun(rs runStats) {
	outcome := "survived"
	if rs.victory {
		outcome = "victory"
	} else if rs.died {
		outcome = "killed in action"
	}
	replay := "ok"
	if !rs.replayOK {
		replay = "DIVERGED"
	}
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s turns=%d damage_taken=%.1f xp=%d\n",
		outcome, rs.turnsSurvived, rs.damageTaken, combat.XPForResult(rs.died, rs.victory))
	fmt.Printf("log_entries=%d replay=%s result_hash=%s\n\n",
		rs.logEntries, replay, rs.resultHash[:16])
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}

	victories := 0
	deaths := 0
	replayFailures := 0
	totalTurns := 0
	totalDamage := 0.0
	totalXP := 0
	for _, rs := range all {
		if rs.victory {
			victories++
		}
		if rs.died {
			deaths++
		}
		if !rs.replayOK {
			replayFailures++
		}
		totalTurns += rs.turnsSurvived
		totalDamage += rs.damageTaken
		totalXP += combat.XPForResult(rs.died, rs.victory)
	}

	n := float64(len(all))
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d victories=%d deaths=%d survivals=%d\n",
		len(all), victories, deaths, len(all)-victories-deaths)
	fmt.Printf("victory_rate=%.1f%% death_rate=%.1f%%\n",
		float64(victories)/n*100, float64(deaths)/n*100)
	fmt.Printf("avg_turns=%.1f avg_damage_taken=%.1f avg_xp=%.1f\n",
		float64(totalTurns)/n, totalDamage/n, float64(totalXP)/n)
	if replayFailures == 0 {
		fmt.Printf("replay_verification=ok (%d/%d)\n", len(all), len(all))
	} else {
		fmt.Printf("replay_verification=FAILED on %d/%d runs\n", replayFailures, len(all))
	}
}
