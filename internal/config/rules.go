package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ClockTime is a wall-clock time of day such as "08:30".
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid hour in clock time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid minute in clock time %q", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns c on the calendar day of t, in t's location.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

func (c *ClockTime) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseClockTime(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// LevelRate holds the rupiah rates of one employee level.
type LevelRate struct {
	Name         string `yaml:"name"`
	DailyRate    int64  `yaml:"daily_rate"`
	OvertimeRate int64  `yaml:"overtime_rate"`
}

// Office is a geofenced work location.
type Office struct {
	Key          string  `yaml:"key"`
	Name         string  `yaml:"name"`
	Latitude     float64 `yaml:"latitude"`
	Longitude    float64 `yaml:"longitude"`
	RadiusMeters float64 `yaml:"radius_meters"`
}

// KPITarget is the monthly target of one job type.
type KPITarget struct {
	JobType string `yaml:"job_type"`
	Name    string `yaml:"name"`
	Target  int    `yaml:"target"`
	Unit    string `yaml:"unit"`
}

// Material is a catalogue entry used to name and measure stock bought
// through expenses.
type Material struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Unit string `yaml:"unit"`
}

type LeaveType struct {
	Key          string `yaml:"key"`
	Name         string `yaml:"name"`
	RequireProof bool   `yaml:"require_proof"`
}

// Rules are the business constants of the company. Nothing in the core
// hardcodes them.
type Rules struct {
	Timezone              string               `yaml:"timezone"`
	WorkStart             ClockTime            `yaml:"work_start"`
	WorkEnd               ClockTime            `yaml:"work_end"`
	LateToleranceMinutes  int                  `yaml:"late_tolerance_minutes"`
	LatePenaltyPerHour    int64                `yaml:"late_penalty_per_hour"`
	Levels                map[string]LevelRate `yaml:"levels"`
	KPITargets            []KPITarget          `yaml:"kpi_targets"`
	KasbonLimitPercentage int64                `yaml:"kasbon_limit_percentage"`
	Offices               []Office             `yaml:"offices"`
	GeolocationTimeout    time.Duration        `yaml:"geolocation_timeout"`
	DefaultBranch         string               `yaml:"default_branch"`
	Materials             []Material           `yaml:"materials"`
	LeaveTypes            []LeaveType          `yaml:"leave_types"`
}

// DefaultRules returns the rules the company runs with today.
func DefaultRules() Rules {
	return Rules{
		Timezone:             "Asia/Makassar",
		WorkStart:            ClockTime{Hour: 8, Minute: 30},
		WorkEnd:              ClockTime{Hour: 17, Minute: 30},
		LateToleranceMinutes: 15,
		LatePenaltyPerHour:   10000,
		Levels: map[string]LevelRate{
			"teknisi":        {Name: "Teknisi", DailyRate: 150000, OvertimeRate: 20000},
			"junior_teknisi": {Name: "Junior Teknisi", DailyRate: 125000, OvertimeRate: 15000},
			"helper":         {Name: "Helper", DailyRate: 100000, OvertimeRate: 15000},
		},
		KPITargets: []KPITarget{
			{JobType: "cuci_ac", Name: "Cuci AC", Target: 7, Unit: "unit/hari"},
			{JobType: "pasang_ac", Name: "Pasang AC", Target: 3, Unit: "unit/hari"},
			{JobType: "bongkar_pasang", Name: "Bongkar Pasang", Target: 2, Unit: "unit/hari"},
			{JobType: "service_berat", Name: "Service Berat", Target: 2, Unit: "unit/hari"},
		},
		KasbonLimitPercentage: 50,
		Offices: []Office{
			{Key: "makassar", Name: "Kantor Makassar", Latitude: -5.135399, Longitude: 119.423790, RadiusMeters: 100},
			{Key: "denpasar", Name: "Kantor Denpasar", Latitude: -8.670458, Longitude: 115.212629, RadiusMeters: 100},
			{Key: "palu", Name: "Kantor Palu", Latitude: -0.900211, Longitude: 119.877888, RadiusMeters: 100},
		},
		GeolocationTimeout: 10 * time.Second,
		DefaultBranch:      "makassar",
		Materials: []Material{
			{Key: "pipa", Name: "Pipa AC", Unit: "meter"},
			{Key: "kabel", Name: "Kabel", Unit: "meter"},
			{Key: "freon", Name: "Freon", Unit: "kg"},
			{Key: "bracket", Name: "Bracket", Unit: "pcs"},
			{Key: "ducktape", Name: "Ducktape", Unit: "roll"},
			{Key: "isolasi", Name: "Isolasi", Unit: "roll"},
		},
		LeaveTypes: []LeaveType{
			{Key: "sakit", Name: "Sakit", RequireProof: true},
			{Key: "izin_pribadi", Name: "Izin Pribadi", RequireProof: false},
			{Key: "pelatihan", Name: "Pelatihan", RequireProof: false},
		},
	}
}

// LoadRules overlays the YAML file at path on DefaultRules. An empty path
// returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate reports every problem at once.
func (r Rules) Validate() error {
	var errs []error
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if !r.WorkStart.On(time.Time{}).Before(r.WorkEnd.On(time.Time{})) {
		errs = append(errs, fmt.Errorf("work_start %s must be before work_end %s", r.WorkStart, r.WorkEnd))
	}
	if r.LateToleranceMinutes < 0 {
		errs = append(errs, errors.New("late_tolerance_minutes must not be negative"))
	}
	if r.LatePenaltyPerHour < 0 {
		errs = append(errs, errors.New("late_penalty_per_hour must not be negative"))
	}
	if len(r.Levels) == 0 {
		errs = append(errs, errors.New("at least one level is required"))
	}
	for key, level := range r.Levels {
		if level.DailyRate < 0 || level.OvertimeRate < 0 {
			errs = append(errs, fmt.Errorf("level %s: rates must not be negative", key))
		}
	}
	if len(r.KPITargets) == 0 {
		errs = append(errs, errors.New("at least one kpi target is required"))
	}
	for _, target := range r.KPITargets {
		if target.JobType == "" {
			errs = append(errs, errors.New("kpi target without job_type"))
		}
	}
	if r.KasbonLimitPercentage < 0 || r.KasbonLimitPercentage > 100 {
		errs = append(errs, errors.New("kasbon_limit_percentage must be between 0 and 100"))
	}
	if len(r.Offices) == 0 {
		errs = append(errs, errors.New("at least one office is required"))
	}
	for _, office := range r.Offices {
		if office.RadiusMeters <= 0 {
			errs = append(errs, fmt.Errorf("office %s: radius_meters must be positive", office.Key))
		}
	}
	if r.GeolocationTimeout <= 0 {
		errs = append(errs, errors.New("geolocation_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Location returns the time zone used for work hours and dates.
func (r Rules) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Level returns the rates of a level.
func (r Rules) Level(key string) (LevelRate, bool) {
	level, ok := r.Levels[key]
	return level, ok
}

func (r Rules) DailyRate(level string) decimal.Decimal {
	return decimal.NewFromInt(r.Levels[level].DailyRate)
}

func (r Rules) OvertimeRate(level string) decimal.Decimal {
	return decimal.NewFromInt(r.Levels[level].OvertimeRate)
}

func (r Rules) KPITarget(jobType string) (KPITarget, bool) {
	for _, target := range r.KPITargets {
		if target.JobType == jobType {
			return target, true
		}
	}
	return KPITarget{}, false
}

func (r Rules) Material(key string) (Material, bool) {
	for _, material := range r.Materials {
		if material.Key == key {
			return material, true
		}
	}
	return Material{}, false
}

func (r Rules) LeaveType(key string) (LeaveType, bool) {
	for _, lt := range r.LeaveTypes {
		if lt.Key == key {
			return lt, true
		}
	}
	return LeaveType{}, false
}

func (r Rules) Office(key string) (Office, bool) {
	for _, office := range r.Offices {
		if office.Key == key {
			return office, true
		}
	}
	return Office{}, false
}
