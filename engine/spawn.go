package engine

// SpawnScheduler emits one spawn every rate ticks, starting at tick 0
type SpawnScheduler struct {
	rate uint64
}

// NewSpawnScheduler treats a zero rate as spawning every tick
func NewSpawnScheduler(rate uint64) SpawnScheduler {
	if rate == 0 {
		rate = 1
	}
	return SpawnScheduler{rate: rate}
}

// ShouldSpawn reports whether a pie is introduced on this session tick
func (s SpawnScheduler) ShouldSpawn(tick uint64) bool {
	return tick%s.rate == 0
}
