package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Screen        string      `json:"screen,omitempty"`
	Unit          string      `json:"unit,omitempty"`
	Display       string      `json:"display,omitempty"`
	Colon         bool        `json:"colon"`
	SensorFault   bool        `json:"sensor_fault"`
	Clock         string      `json:"clock,omitempty"`
	Temperature   *int        `json:"temperature,omitempty"`
	Degraded      bool        `json:"degraded"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	Drivers       DriversJSON `json:"drivers"`
	Config        ConfigJSON  `json:"config"`
}

// DriversJSON is the JSON representation of the peripheral drivers.
type DriversJSON struct {
	Buttons string `json:"buttons"`
	Display string `json:"display"`
	RTC     string `json:"rtc"`
	Sensor  string `json:"sensor"`
	Store   string `json:"store"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	ConfigFile string `json:"config_file,omitempty"`
	PeriodMs   int64  `json:"period_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	HoldMs     int64  `json:"hold_ms"`
	StorePath  string `json:"store_path"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Screen:        snap.Screen,
		Unit:          snap.Unit,
		Display:       snap.Shown,
		Colon:         snap.Colon,
		SensorFault:   snap.SensorFault,
		Temperature:   snap.Temperature,
		Degraded:      snap.Drivers.Degraded(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Drivers: DriversJSON{
			Buttons: snap.Drivers.Buttons,
			Display: snap.Drivers.Display,
			RTC:     snap.Drivers.RTC,
			Sensor:  snap.Drivers.Sensor,
			Store:   snap.Drivers.Store,
		},
		Config: ConfigJSON{
			ConfigFile: snap.Config.ConfigFile,
			PeriodMs:   snap.Config.PeriodMs,
			DebounceMs: snap.Config.DebounceMs,
			HoldMs:     snap.Config.HoldMs,
			StorePath:  snap.Config.StorePath,
		},
	}
	if !snap.Clock.IsZero() {
		inner.Clock = snap.Clock.Format("2006-01-02 15:04:05")
	}
	return inner
}

// FormatJSON returns the indented JSON status printed by print-state.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the single-line JSON status logged at startup
// and shutdown.
func FormatStatusEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
