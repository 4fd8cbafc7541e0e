package dto

type LossInput struct {
	App   string
	Hours float64
}

type LossOutput struct {
	App             string
	Hours           float64
	KnownApp        bool
	ProfitWeight    float64
	HourlyValue     float64
	Loss            float64
	CorporateProfit float64
	LossText        string
}

type ROIInput struct {
	Cost       float64
	UsageHours float64
}

type ROIOutput struct {
	Cost         float64
	UsageHours   float64
	CostPerHour  float64
	IsWorthwhile bool
	Verdict      string
	Advice       string
}

type PointsInput struct {
	Activity string
	Hours    float64
}

type PointsOutput struct {
	Activity string
	Known    bool
	Rate     float64
	Points   float64
}

type DebtInput struct {
	Pickups       int
	Notifications int
}

type DebtOutput struct {
	Pickups       int
	Notifications int
	Minutes       float64
	Value         float64
	Rate          float64
}

type RateRow struct {
	Key  string
	Rate float64
}

type RatesOutput struct {
	BaseHourlyValue     float64
	NeutralHourlyValue  float64
	ReferenceHourlyRate float64
	ProfitWeights       []RateRow
	CorporateRates      []RateRow
	FocusRates          []RateRow
}
