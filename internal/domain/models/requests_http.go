package models

// Requests for the calculation HTTP endpoints. Defined in domain for
// consistency and reuse; tags drive binding, defaulting and validation.

type ChartRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Place       string  `json:"place"` // resolved via geocoding when coordinates are absent
	HouseSystem string  `json:"house_system" default:"placidus"`
	Aspects     bool    `json:"with_aspects" default:"true"`
	Dignities   bool    `json:"with_dignities"`
	Elements    bool    `json:"with_elements" default:"true"`
	Modalities  bool    `json:"with_modalities" default:"true"`
}

type ChartSummaryRequest struct {
	Date      string   `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time      string   `query:"time" json:"time" validate:"omitempty,datetime=15:04:05"`
	Latitude  *float64 `query:"latitude" json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type PositionsRequest struct {
	Date      string   `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time      string   `query:"time" json:"time" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	Bodies    string   `query:"bodies" json:"bodies"` // comma separated, empty = all
	Latitude  *float64 `query:"latitude" json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type PositionRangeRequest struct {
	Body         string `query:"body" json:"body" validate:"required"`
	StartDate    string `query:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `query:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
	IntervalDays int    `query:"interval_days" json:"interval_days" default:"1" validate:"gte=1,lte=366"`
}

type IngressRequest struct {
	Body      string `query:"body" json:"body" validate:"required"`
	StartDate string `query:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type AspectsRequest struct {
	Positions map[string]float64 `json:"positions" validate:"required,min=2"`
	Aspects   []string           `json:"aspects"`
	Orbs      map[string]float64 `json:"orbs"`
}

type SynastryRequest struct {
	Date1   string             `json:"date1" validate:"required,datetime=2006-01-02"`
	Time1   string             `json:"time1" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	Date2   string             `json:"date2" validate:"omitempty,datetime=2006-01-02"`
	Time2   string             `json:"time2" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	Bodies1 []string           `json:"bodies1"`
	Bodies2 []string           `json:"bodies2"`
	Aspects []string           `json:"aspects"`
	Orbs    map[string]float64 `json:"orbs"`
}

type AspectTimelineRequest struct {
	Body1     string  `query:"body1" json:"body1" validate:"required"`
	Body2     string  `query:"body2" json:"body2" validate:"required"`
	Aspect    string  `query:"aspect" json:"aspect" validate:"required"`
	StartDate string  `query:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `query:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
	Orb       float64 `query:"orb" json:"orb" default:"1.0" validate:"gt=0,lte=15"`
}

type TransitsRequest struct {
	NatalPositions map[string]float64 `json:"natal_positions" validate:"required,min=1"`
	Date           string             `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string             `json:"time" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	Bodies         []string           `json:"bodies"`
	Aspects        []string           `json:"aspects"`
	Orbs           map[string]float64 `json:"orbs"`
}

type TransitPeriodRequest struct {
	NatalPositions map[string]float64 `json:"natal_positions" validate:"required,min=1"`
	StartDate      string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string             `json:"end_date" validate:"required,datetime=2006-01-02"`
	Bodies         []string           `json:"bodies"`
	Aspects        []string           `json:"aspects"`
	Orbs           map[string]float64 `json:"orbs"`
}

type CurrentTransitsRequest struct {
	BirthDate string   `query:"birth_date" json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime string   `query:"birth_time" json:"birth_time" validate:"omitempty,datetime=15:04:05"`
	Latitude  *float64 `query:"latitude" json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Orb       float64  `query:"orb" json:"orb" default:"1.0" validate:"gt=0,lte=10"`
}

type ForecastRequest struct {
	BirthDate string   `query:"birth_date" json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime string   `query:"birth_time" json:"birth_time" validate:"omitempty,datetime=15:04:05"`
	Latitude  *float64 `query:"latitude" json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	StartDate string   `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Bodies    string   `query:"bodies" json:"bodies"` // comma separated transit bodies
}

type ProgressionsRequest struct {
	BirthDate     string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime     string   `json:"birth_time" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	TargetDate    string   `json:"target_date" validate:"required,datetime=2006-01-02"`
	Method        string   `json:"method" default:"secondary" validate:"oneof=secondary tertiary solar_arc minor"`
	Bodies        []string `json:"bodies"`
	IncludeHouses bool     `json:"include_houses"`
	HouseSystem   string   `json:"house_system" default:"placidus"`
}

type ProgressedTransitsRequest struct {
	BirthDate  string             `json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime  string             `json:"birth_time" default:"12:00:00" validate:"omitempty,datetime=15:04:05"`
	TargetDate string             `json:"target_date" validate:"required,datetime=2006-01-02"`
	Date       string             `json:"date" validate:"omitempty,datetime=2006-01-02"` // transit date, defaults to target_date
	Time       string             `json:"time" validate:"omitempty,datetime=15:04:05"`
	Method     string             `json:"method" default:"secondary" validate:"oneof=secondary tertiary solar_arc minor"`
	Bodies     []string           `json:"bodies"`
	Aspects    []string           `json:"aspects"`
	Orbs       map[string]float64 `json:"orbs"`
}

type SecondaryProgressionsRequest struct {
	BirthDate  string `query:"birth_date" json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime  string `query:"birth_time" json:"birth_time" validate:"omitempty,datetime=15:04:05"`
	TargetDate string `query:"target_date" json:"target_date" validate:"required,datetime=2006-01-02"`
	Bodies     string `query:"bodies" json:"bodies"` // comma separated, empty = all
}

type ProgressionTimelineRequest struct {
	BirthDate      string   `query:"birth_date" json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime      string   `query:"birth_time" json:"birth_time" validate:"omitempty,datetime=15:04:05"`
	Latitude       *float64 `query:"latitude" json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `query:"longitude" json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	StartDate      string   `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string   `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IntervalMonths int      `query:"interval_months" json:"interval_months" default:"6" validate:"gte=1,lte=60"`
	Method         string   `query:"method" json:"method" default:"secondary" validate:"oneof=secondary tertiary solar_arc minor"`
	Body           string   `query:"body" json:"body"`
}
