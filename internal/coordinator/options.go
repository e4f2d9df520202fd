package coordinator

import (
	"switchscan/internal/config"
	"switchscan/internal/scan/cursor"
	"switchscan/internal/scan/grouping"
	"switchscan/internal/scan/items"
	"switchscan/internal/scan/radar"
)

func itemOptions(cfg *config.Config) items.Options {
	return items.Options{
		Manual:       cfg.Scanning.Manual(),
		Rate:         cfg.Scanning.Rate(),
		InitialDelay: cfg.Scanning.InitialDelay(),
		StopOnSelect: cfg.Scanning.StopOnSelect,
		GroupScan:    cfg.Items.GroupScan,
		Grouping: grouping.Options{
			ItemThreshold: cfg.Items.ThresholdDP,
			Density:       cfg.Items.Density,
			RowColumn:     cfg.Items.RowColumn,
			GroupSize:     cfg.Items.GroupSize,
		},
	}
}

func cursorOptions(cfg *config.Config) cursor.Options {
	return cursor.Options{
		Manual:       cfg.Scanning.Manual(),
		Rate:         cfg.Scanning.Rate(),
		InitialDelay: cfg.Scanning.InitialDelay(),
		FineRate:     cfg.Cursor.FineRate(),
		Block:        cfg.Cursor.Block(),
		LineStep:     cfg.Cursor.LineStepPX,
	}
}

func radarOptions(cfg *config.Config) radar.Options {
	return radar.Options{
		Manual:       cfg.Scanning.Manual(),
		Rate:         cfg.Scanning.Rate(),
		InitialDelay: cfg.Scanning.InitialDelay(),
		FineRate:     cfg.Radar.FineRate(),
		AngleStep:    cfg.Radar.AngleStepDeg,
		RadiusStep:   cfg.Radar.RadiusStepPX,
	}
}
