package models

// Lap is one completed circuit. The total is computed once on construction.
type Lap struct {
	sector1   float64
	sector2   float64
	sector3   float64
	totalTime float64
}

func NewLap(sector1, sector2, sector3 float64) Lap {
	return Lap{
		sector1:   sector1,
		sector2:   sector2,
		sector3:   sector3,
		totalTime: sector1 + sector2 + sector3,
	}
}

func (l Lap) Sector1() float64   { return l.sector1 }
func (l Lap) Sector2() float64   { return l.sector2 }
func (l Lap) Sector3() float64   { return l.sector3 }
func (l Lap) TotalTime() float64 { return l.totalTime }

// Record returns the plain snapshot stored in the session lap list.
func (l Lap) Record() LapRecord {
	return LapRecord{
		Sector1:   l.sector1,
		Sector2:   l.sector2,
		Sector3:   l.sector3,
		TotalTime: l.totalTime,
	}
}

// LapRecord is a lap snapshot. Its position in the session list is its only identity.
type LapRecord struct {
	Sector1   float64 `json:"sector1"`
	Sector2   float64 `json:"sector2"`
	Sector3   float64 `json:"sector3"`
	TotalTime float64 `json:"totalTime"`
}

// LapEntry is one row of the lap log as shown to the visitor. Index is the
// position in the stored list, used for deletion regardless of display order.
type LapEntry struct {
	Index   int       `json:"index"`
	Lap     LapRecord `json:"lap"`
	Fastest bool      `json:"fastest"`
}
