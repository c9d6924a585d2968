// Package sounding serves vertical profiles with CAPE and CIN, from
// observed upper-air data when a usable launch is available and from a
// built-in demo profile otherwise.
package sounding

// Level is one profile row. Pressure is in hPa, temperature and dewpoint in
// degrees C; the JSON names carry the units.
type Level struct {
	Pressure    float64 `json:"p_hpa"`
	Temperature float64 `json:"T_C"`
	Dewpoint    float64 `json:"Td_C"`
}

// Sounding is the payload shape shared by every source. Station fields are
// populated only for observed soundings.
type Sounding struct {
	Source     string  `json:"source"`
	StationID  int     `json:"station_id,omitempty"`
	StationLat float64 `json:"station_lat,omitempty"`
	StationLon float64 `json:"station_lon,omitempty"`
	FromTime   string  `json:"from_time,omitempty"`
	CAPE       float64 `json:"cape_j_kg"`
	CIN        float64 `json:"cin_j_kg"`
	Profile    []Level `json:"profile"`
}
