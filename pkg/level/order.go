package level

import (
	"maps"
	"slices"
)

// DefaultPriority is the bucket for classes the registry does not know.
// It is larger than every built-in bucket, so unknown objects sort last.
const DefaultPriority = 1000

// Built-in priority buckets.
const (
	PriorityDefinition = 0
	PriorityModule     = 10
	PriorityBoard      = 20
	PriorityChallenge  = 30
	PriorityWaveModule = 40
	PriorityWaves      = 50
	PriorityWaveAction = 60
)

var builtinPriorities = map[string]int{
	"LevelDefinition": PriorityDefinition,

	"SeedBankProperties":                 PriorityModule,
	"ConveyorSeedBankProperties":         PriorityModule,
	"SunDropperProperties":               PriorityModule,
	"LevelMutatorMaxSunProps":            PriorityModule,
	"LevelMutatorStartingPlantfoodProps": PriorityModule,
	"ZombiesDeadWinConProperties":        PriorityModule,
	"ZombiesAteYourBrainsProperties":     PriorityModule,
	"StarChallengeModuleProperties":      PriorityModule,
	"RailcartProperties":                 PriorityModule,
	"PiratePlankProperties":              PriorityModule,
	"PowerTileProperties":                PriorityModule,
	"TideProperties":                     PriorityModule,

	"InitialPlantEntryProperties":           PriorityBoard,
	"InitialPlantProperties":                PriorityBoard,
	"InitialZombieProperties":               PriorityBoard,
	"InitialGridItemProperties":             PriorityBoard,
	"ProtectThePlantChallengeProperties":    PriorityBoard,
	"ProtectTheGridItemChallengeProperties": PriorityBoard,

	"StarChallengeBeatTheLevelProps":       PriorityChallenge,
	"StarChallengeZombieDistanceProps":     PriorityChallenge,
	"StarChallengeSunProducedProps":        PriorityChallenge,
	"StarChallengePlantsLostProps":         PriorityChallenge,
	"StarChallengeSpendSunHoldoutProps":    PriorityChallenge,
	"StarChallengeKillZombiesInTimeProps":  PriorityChallenge,
	"StarChallengeSaveMowersProps":         PriorityChallenge,
	"StarChallengeBlowZombieProps":         PriorityChallenge,
	"StarChallengeTargetScoreProps":        PriorityChallenge,
	"StarChallengeSimultaneousPlantsProps": PriorityChallenge,

	"WaveManagerModuleProperties": PriorityWaveModule,
	"WaveManagerProperties":       PriorityWaves,

	"SpawnZombiesJitteredWaveActionProps":  PriorityWaveAction,
	"SpawnZombiesFromGroundSpawnerProps":   PriorityWaveAction,
	"SpawnZombiesFromGridItemSpawnerProps": PriorityWaveAction,
	"SpawnGravestonesWaveActionProps":      PriorityWaveAction,
	"SpawnModernPortalsWaveActionProps":    PriorityWaveAction,
	"StormZombieSpawnerProps":              PriorityWaveAction,
	"ParachuteRainZombieSpawnerProps":      PriorityWaveAction,
	"BeachStageEventZombieSpawnerProps":    PriorityWaveAction,
	"TidalChangeWaveActionProps":           PriorityWaveAction,
	"ModifyConveyorWaveActionProps":        PriorityWaveAction,
	"DinoWaveActionProps":                  PriorityWaveAction,
	"FrostWindWaveActionProps":             PriorityWaveAction,
	"RaidingPartyZombieSpawnerProps":       PriorityWaveAction,
	"ZombiePotionActionProps":              PriorityWaveAction,
	"MagicMirrorWaveActionProps":           PriorityWaveAction,
}

// Registry assigns serialization priorities to object classes.
// The zero value is not usable; call NewRegistry.
type Registry struct {
	priorities map[string]int
}

// NewRegistry returns a registry preloaded with the built-in classes.
func NewRegistry() *Registry {
	return &Registry{priorities: maps.Clone(builtinPriorities)}
}

// Register sets the priority for class, replacing any previous value.
// Registries are not safe for concurrent Register calls.
func (r *Registry) Register(class string, priority int) {
	r.priorities[class] = priority
}

// Priority returns the bucket for class.
func (r *Registry) Priority(class string) int {
	if p, ok := r.priorities[class]; ok {
		return p
	}
	return DefaultPriority
}

// Normalize returns objs stable-sorted by class priority. The input slice
// is not modified. Nil objects sort with DefaultPriority.
func (r *Registry) Normalize(objs []*Object) []*Object {
	out := slices.Clone(objs)
	slices.SortStableFunc(out, func(a, b *Object) int {
		return r.priority(a) - r.priority(b)
	})
	return out
}

// IsNormalized reports whether objs are already in serialization order.
func (r *Registry) IsNormalized(objs []*Object) bool {
	return slices.IsSortedFunc(objs, func(a, b *Object) int {
		return r.priority(a) - r.priority(b)
	})
}

func (r *Registry) priority(o *Object) int {
	if o == nil {
		return DefaultPriority
	}
	return r.Priority(o.Class)
}

var defaultRegistry = NewRegistry()

// Priority returns the built-in bucket for class.
func Priority(class string) int {
	return defaultRegistry.Priority(class)
}

// Normalize sorts objs with the built-in registry.
func Normalize(objs []*Object) []*Object {
	return defaultRegistry.Normalize(objs)
}

// IsNormalized reports whether objs follow the built-in order.
func IsNormalized(objs []*Object) bool {
	return defaultRegistry.IsNormalized(objs)
}
