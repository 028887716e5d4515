// Package dataset loads the dashboard payload from disk and watches it for
// changes.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

// ErrNoDataPath is returned when no dataset location was configured.
var ErrNoDataPath = errors.New("no dataset path configured")

type rawDataset struct {
	Types       []json.RawMessage          `json:"types"`
	Years       []json.RawMessage          `json:"years"`
	Aggregates  json.RawMessage            `json:"aggregates"`
	Activities  []json.RawMessage          `json:"activities"`
	Units       json.RawMessage            `json:"units"`
	WeekStart   json.RawMessage            `json:"week_start"`
	TypeMeta    map[string]json.RawMessage `json:"type_meta"`
	OtherBucket string                     `json:"other_bucket"`
}

func Load(path string) (core.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return core.Dataset{}, ErrNoDataPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("reading dataset: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":       path,
		"types":      len(ds.Types),
		"years":      len(ds.Years),
		"activities": len(ds.Activities),
	}).Debug("dataset: loaded")
	return ds, nil
}

// Parse decodes a dataset. Only a top level that is not a JSON object is an
// error; malformed entries below it are dropped or zeroed.
func Parse(data []byte) (core.Dataset, error) {
	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.Dataset{}, err
	}

	ds := core.Dataset{
		Aggregates:  parseAggregates(raw.Aggregates),
		OtherBucket: strings.TrimSpace(raw.OtherBucket),
	}

	for _, t := range raw.Types {
		var s string
		if json.Unmarshal(t, &s) == nil && strings.TrimSpace(s) != "" {
			ds.Types = append(ds.Types, strings.TrimSpace(s))
		}
	}
	ds.Types = lo.Uniq(ds.Types)

	for _, y := range raw.Years {
		if year, ok := parseYear(y); ok {
			ds.Years = append(ds.Years, year)
		}
	}
	ds.Years = lo.Uniq(ds.Years)
	if len(ds.Years) == 0 {
		ds.Years = lo.Keys(ds.Aggregates)
		sort.Sort(sort.Reverse(sort.IntSlice(ds.Years)))
	}

	dropped := 0
	for _, msg := range raw.Activities {
		var a core.Activity
		if err := json.Unmarshal(msg, &a); err != nil || a.Type == "" {
			dropped++
			continue
		}
		ds.Activities = append(ds.Activities, a)
	}
	if dropped > 0 {
		log.WithField("dropped", dropped).Debug("dataset: skipped malformed activities")
	}

	_ = json.Unmarshal(raw.Units, &ds.Units)
	ds.Units = normalizeUnits(ds.Units)

	var ws string
	_ = json.Unmarshal(raw.WeekStart, &ws)
	ds.WeekStart = core.ParseWeekStart(ws)

	if len(raw.TypeMeta) > 0 {
		ds.TypeMeta = make(map[string]core.TypeMeta, len(raw.TypeMeta))
		for name, msg := range raw.TypeMeta {
			var meta core.TypeMeta
			if json.Unmarshal(msg, &meta) == nil {
				ds.TypeMeta[name] = meta
			}
		}
	}
	return ds, nil
}

func parseAggregates(msg json.RawMessage) core.Aggregates {
	out := make(core.Aggregates)
	var byYear map[string]json.RawMessage
	if json.Unmarshal(msg, &byYear) != nil {
		return out
	}
	for yearKey, yearMsg := range byYear {
		year, err := strconv.Atoi(strings.TrimSpace(yearKey))
		if err != nil {
			continue
		}
		var byType map[string]json.RawMessage
		if json.Unmarshal(yearMsg, &byType) != nil {
			continue
		}
		types := make(map[string]map[string]core.DailyAggregate, len(byType))
		for activityType, typeMsg := range byType {
			var byDate map[string]json.RawMessage
			if json.Unmarshal(typeMsg, &byDate) != nil {
				continue
			}
			days := make(map[string]core.DailyAggregate, len(byDate))
			for date, dayMsg := range byDate {
				var agg core.DailyAggregate
				_ = json.Unmarshal(dayMsg, &agg)
				days[date] = agg
			}
			types[activityType] = days
		}
		out[year] = types
	}
	return out
}

func parseYear(msg json.RawMessage) (int, bool) {
	var n float64
	if json.Unmarshal(msg, &n) == nil && n == float64(int(n)) {
		return int(n), true
	}
	var s string
	if json.Unmarshal(msg, &s) == nil {
		if y, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return y, true
		}
	}
	return 0, false
}

func normalizeUnits(u core.Units) core.Units {
	u.Distance = strings.ToLower(strings.TrimSpace(u.Distance))
	u.Elevation = strings.ToLower(strings.TrimSpace(u.Elevation))
	if u.Distance != "mi" {
		u.Distance = "km"
	}
	if u.Elevation != "ft" {
		u.Elevation = "m"
	}
	return u
}
