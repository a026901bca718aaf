package finance

import (
	"math"
	"strings"
)

// RiskTolerance is the investor's risk level.
type RiskTolerance string

// Risk levels
const (
	RiskLow      RiskTolerance = "low"
	RiskModerate RiskTolerance = "moderate"
	RiskHigh     RiskTolerance = "high"
)

// RiskLevels lists the accepted risk levels.
var RiskLevels = []RiskTolerance{RiskLow, RiskModerate, RiskHigh}

// ParseRiskTolerance parses a case-insensitive risk level.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	r := RiskTolerance(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := recommended[r]; !ok {
		return "", invalidf("invalid risk tolerance %q, choose from: low, moderate, high", s)
	}
	return r, nil
}

// AssetClass is a portfolio asset class.
type AssetClass string

// Asset classes
const (
	Stocks         AssetClass = "stocks"
	Bonds          AssetClass = "bonds"
	Cash           AssetClass = "cash"
	RealEstate     AssetClass = "real estate"
	Commodities    AssetClass = "commodities"
	Cryptocurrency AssetClass = "cryptocurrency"
)

// AssetClasses lists the asset classes in report order.
var AssetClasses = []AssetClass{Stocks, Bonds, Cash, RealEstate, Commodities, Cryptocurrency}

// Range is a recommended allocation range in percent, inclusive.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

var recommended = map[RiskTolerance]map[AssetClass]Range{
	RiskLow: {
		Stocks:         {20, 40},
		Bonds:          {40, 60},
		Cash:           {10, 25},
		RealEstate:     {0, 10},
		Commodities:    {0, 5},
		Cryptocurrency: {0, 0},
	},
	RiskModerate: {
		Stocks:         {40, 60},
		Bonds:          {25, 40},
		Cash:           {5, 15},
		RealEstate:     {5, 15},
		Commodities:    {0, 10},
		Cryptocurrency: {0, 5},
	},
	RiskHigh: {
		Stocks:         {60, 80},
		Bonds:          {10, 30},
		Cash:           {0, 10},
		RealEstate:     {5, 20},
		Commodities:    {0, 15},
		Cryptocurrency: {0, 10},
	},
}

// RecommendedRange returns the recommended range of the asset for the risk level.
func RecommendedRange(risk RiskTolerance, asset AssetClass) Range {
	return recommended[risk][asset]
}

// AllocationStatus compares an allocation with its recommended range.
type AllocationStatus string

// Allocation statuses
const (
	StatusBelow  AllocationStatus = "below"
	StatusWithin AllocationStatus = "within"
	StatusAbove  AllocationStatus = "above"
)

// AssetAnalysis is the verdict for one asset class.
type AssetAnalysis struct {
	Asset       AssetClass       `json:"asset" yaml:"asset"`
	Percent     float64          `json:"percent" yaml:"percent"`
	Recommended Range            `json:"recommended" yaml:"recommended"`
	Status      AllocationStatus `json:"status" yaml:"status"`
}

// Analysis is the result of AnalyzePortfolio.
type Analysis struct {
	Risk         RiskTolerance
	Total        float64
	Assets       []AssetAnalysis
	Observations []string
}

// Observation texts
const (
	ObservationStocksHigh  = "Your stock allocation is high for your risk tolerance."
	ObservationStocksLow   = "Your stock allocation is low for your risk tolerance."
	ObservationCashHigh    = "High cash allocation may result in potential missed growth opportunities."
	ObservationBondsLow    = "Consider increasing bond allocation for better stability."
	ObservationWellAligned = "Your allocation generally aligns with your risk tolerance."
)

// allocationTolerance is the accepted deviation of the allocation total from 100%.
const allocationTolerance = 1.0

// AnalyzePortfolio compares the allocation, in percent per asset class,
// with the ranges recommended for the risk level.
// Asset names are case-insensitive; the allocation must total 100% within one point.
func AnalyzePortfolio(allocation map[string]float64, riskTolerance string) (Analysis, error) {
	risk, err := ParseRiskTolerance(riskTolerance)
	if err != nil {
		return Analysis{}, err
	}
	if len(allocation) == 0 {
		return Analysis{}, invalidf("allocation must not be empty")
	}

	normalized := make(map[AssetClass]float64, len(allocation))
	var total float64
	for name, pct := range allocation {
		asset := AssetClass(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := recommended[risk][asset]; !ok {
			return Analysis{}, invalidf("invalid asset class %q, valid classes are: %s", name, assetList())
		}
		if _, dup := normalized[asset]; dup {
			return Analysis{}, invalidf("asset class %q is listed more than once", name)
		}
		if !isFinite(pct) || pct < 0 {
			return Analysis{}, invalidf("allocation for %q must not be negative, got %v", name, pct)
		}
		normalized[asset] = pct
		total += pct
	}
	if math.Abs(total-100) > allocationTolerance {
		return Analysis{}, invalidf("portfolio allocation should sum to 100%%, current total: %v%%", total)
	}

	res := Analysis{
		Risk:   risk,
		Total:  total,
		Assets: make([]AssetAnalysis, 0, len(AssetClasses)),
	}
	for _, asset := range AssetClasses {
		pct := normalized[asset]
		rng := recommended[risk][asset]
		status := StatusWithin
		switch {
		case pct < rng.Min:
			status = StatusBelow
		case pct > rng.Max:
			status = StatusAbove
		}
		res.Assets = append(res.Assets, AssetAnalysis{
			Asset:       asset,
			Percent:     pct,
			Recommended: rng,
			Status:      status,
		})
	}

	stocks := normalized[Stocks]
	switch {
	case risk == RiskLow && stocks > 40:
		res.Observations = append(res.Observations, ObservationStocksHigh)
	case risk == RiskHigh && stocks < 50:
		res.Observations = append(res.Observations, ObservationStocksLow)
	}
	if normalized[Cash] > 20 {
		res.Observations = append(res.Observations, ObservationCashHigh)
	}
	if normalized[Bonds] < 10 && risk != RiskHigh {
		res.Observations = append(res.Observations, ObservationBondsLow)
	}
	if len(res.Observations) == 0 {
		res.Observations = []string{ObservationWellAligned}
	}
	return res, nil
}

func assetList() string {
	names := make([]string, len(AssetClasses))
	for i, a := range AssetClasses {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
