package chainclock

import "time"

// Clock derives a monotonically increasing chain height from wall time: the
// number of whole block intervals elapsed since genesis. Every governance
// window (vote windows, review windows) is measured in these heights.
type Clock struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

// New builds a clock anchored at the genesis unix second with a fixed block
// interval. A non-positive interval falls back to six seconds.
func New(genesisUnix int64, blockIntervalMS uint64) *Clock {
	interval := time.Duration(blockIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 6 * time.Second
	}
	return &Clock{
		genesis:  time.Unix(genesisUnix, 0).UTC(),
		interval: interval,
		now:      time.Now,
	}
}

func (c *Clock) Now() uint64 {
	elapsed := c.now().UTC().Sub(c.genesis)
	if elapsed <= 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}
