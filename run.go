package coaster

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RunLog is the record of a headless ride.
type RunLog struct {
	RunID     string     `json:"run_id"`
	Segments  int        `json:"segments"`
	MaxHeight float64    `json:"max_height"`
	MinHeight float64    `json:"min_height"`
	Reversals int        `json:"reversals"`
	Entries   []LogEntry `json:"entries"`
}

// LogEntry is the rider's state after one tick.
type LogEntry struct {
	Tick     uint64     `json:"tick"`
	Segment  int        `json:"segment"`
	T        float64    `json:"t"`
	Speed    float64    `json:"speed"`
	Dir      int        `json:"dir"`
	Position [3]float64 `json:"position"`
}

// Run rides cfg.Ticks ticks without any input and logs the rider's state
// after each of them.
func Run(cfg Config) (*RunLog, error) {
	sim, err := New(cfg)
	if err != nil {
		return nil, err
	}
	ext := sim.Loop().Extremes()
	log := &RunLog{
		RunID:     uuid.Must(uuid.NewV7()).String(),
		Segments:  sim.Loop().N(),
		MaxHeight: ext.Max,
		MinHeight: ext.Min,
		Entries:   make([]LogEntry, 0, cfg.Ticks),
	}
	dir := sim.Frame().Pose.Dir
	for i := 0; i < cfg.Ticks; i++ {
		pose := sim.Tick().Pose
		if pose.Dir != dir {
			log.Reversals++
			dir = pose.Dir
		}
		log.Entries = append(log.Entries, LogEntry{
			Tick:     uint64(i + 1),
			Segment:  int(pose.Segment),
			T:        pose.T,
			Speed:    pose.Speed,
			Dir:      int(pose.Dir),
			Position: [3]float64{pose.Position.X, pose.Position.Y, pose.Position.Z},
		})
	}
	tracer().Infof("run %s: %d ticks, %d reversals", log.RunID, cfg.Ticks, log.Reversals)
	return log, nil
}

// RunJSON is Run with the log encoded as JSON.
func RunJSON(cfg Config) (string, error) {
	log, err := Run(cfg)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(log)
	if err != nil {
		return "", fmt.Errorf("marshaling run log: %w", err)
	}
	return string(out), nil
}
