package dto

import (
	"net/url"

	"github.com/samber/lo"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/pkg/validator"
)

const (
	MsgLapAdded        = "Lap added successfully!"
	MsgFillAllFields   = "Please fill in all fields!"
	MsgPositiveSectors = "Sector times must be positive numbers!"
)

var sectorFields = []string{"sector1", "sector2", "sector3"}

type LapForm struct {
	Sector1 string
	Sector2 string
	Sector3 string

	parsed [3]float64
}

func NewLapForm(form url.Values) *LapForm {
	return &LapForm{
		Sector1: form.Get("sector1"),
		Sector2: form.Get("sector2"),
		Sector3: form.Get("sector3"),
	}
}

func (f *LapForm) values() []string {
	return []string{f.Sector1, f.Sector2, f.Sector3}
}

// Sectors returns the parsed sector times. Only meaningful after a successful validation.
func (f *LapForm) Sectors() (float64, float64, float64) {
	return f.parsed[0], f.parsed[1], f.parsed[2]
}

// ValidateLapForm requires all three sectors ("0" counts as empty) and then
// requires each to be a positive number.
func ValidateLapForm(v *validator.Validator, f *LapForm) {
	values := f.values()

	for i, val := range values {
		v.Check(validator.Filled(val), sectorFields[i], MsgFillAllFields)
	}
	if !v.Valid() {
		return
	}

	for i, val := range values {
		sec, ok := validator.PositiveFloat(val)
		v.Check(ok, sectorFields[i], MsgPositiveSectors)
		f.parsed[i] = sec
	}
}

// FirstError returns the message of the first failing sector field.
func FirstError(v *validator.Validator) string {
	for _, field := range sectorFields {
		if msg, ok := v.Errors[field]; ok {
			return msg
		}
	}
	return ""
}

type LapResponse struct {
	Index     int     `json:"index"`
	Sector1   float64 `json:"sector1"`
	Sector2   float64 `json:"sector2"`
	Sector3   float64 `json:"sector3"`
	TotalTime float64 `json:"totalTime"`
	Fastest   bool    `json:"fastest"`
}

type LapsResponse struct {
	Laps []LapResponse `json:"laps"`
}

func NewLapsResponse(entries []models.LapEntry) LapsResponse {
	laps := lo.Map(entries, func(e models.LapEntry, _ int) LapResponse {
		return LapResponse{
			Index:     e.Index,
			Sector1:   e.Lap.Sector1,
			Sector2:   e.Lap.Sector2,
			Sector3:   e.Lap.Sector3,
			TotalTime: e.Lap.TotalTime,
			Fastest:   e.Fastest,
		}
	})
	return LapsResponse{Laps: laps}
}
