// chart_config.go
package models

import (
	"fmt"
	"os"

	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"

	"gopkg.in/yaml.v3"
)

// DemoRow is one row of the example table shown to first-time users, as it
// appears in chart.yaml.
type DemoRow struct {
	Activity string `yaml:"activity"`
	Time     string `yaml:"time"`
	IntakeML int    `yaml:"intake_ml"`
	OutputML int    `yaml:"output_ml"`
	Leak     string `yaml:"leak"`
}

// ChartConfig holds the bilingual display labels and the demo template for
// the frequency-volume chart.
type ChartConfig struct {
	ActivityLabels map[string]string `yaml:"activity_labels"`
	ColumnLabels   []string          `yaml:"column_labels"`
	Demo           []DemoRow         `yaml:"demo"`
}

// LoadChartConfig reads and parses the chart.yaml file.
func LoadChartConfig(path string) (*ChartConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart config: %w", err)
	}

	var cfg ChartConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart config YAML: %w", err)
	}

	return &cfg, nil
}

// ActivityLabel returns the bilingual display label for an activity, falling
// back to the canonical English name when chart.yaml has no entry.
func (c *ChartConfig) ActivityLabel(a Activity) string {
	if c != nil {
		if label, ok := c.ActivityLabels[a.String()]; ok {
			return label
		}
	}
	return a.String()
}

// DemoLog builds the template day log from the configured demo rows, or the
// built-in demo when the config carries none. Rows with malformed times are
// kept with the time unset, same as any other ingested row.
func (c *ChartConfig) DemoLog() DayLog {
	if c == nil || len(c.Demo) == 0 {
		return BuiltinDemoLog()
	}
	log := make(DayLog, 0, len(c.Demo))
	for _, row := range c.Demo {
		t, err := timeslot.ToMinutes(row.Time)
		if err != nil {
			t = timeslot.Unset
		}
		log = append(log, VoidEntry{
			Activity: ClassifyActivity(row.Activity),
			Time:     t,
			IntakeML: row.IntakeML,
			OutputML: row.OutputML,
			Leak:     ParseLeak(row.Leak),
		})
	}
	return log
}

// BuiltinDemoLog is the shipped example day: a typical log with one
// nighttime void, used when no chart.yaml is available.
func BuiltinDemoLog() DayLog {
	return DayLog{
		{Activity: FirstMorningVoid, Time: 6 * 60, IntakeML: 0, OutputML: 150, Leak: LeakNo},
		{Activity: DaytimeVoid, Time: 8 * 60, IntakeML: 250, OutputML: 200, Leak: LeakNo},
		{Activity: DaytimeVoid, Time: 12 * 60, IntakeML: 300, OutputML: 250, Leak: LeakNo},
		{Activity: DaytimeVoid, Time: 18 * 60, IntakeML: 400, OutputML: 300, Leak: LeakNo},
		{Activity: BedtimeVoid, Time: 22 * 60, IntakeML: 200, OutputML: 100, Leak: LeakNo},
		{Activity: NighttimeVoid, Time: 2 * 60, IntakeML: 0, OutputML: 150, Leak: LeakYes},
	}
}
