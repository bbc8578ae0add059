package model

// RiskBucket is the coarse risk label assigned upstream by the scoring service.
type RiskBucket string

const (
	RiskBucketHigh   RiskBucket = "High"
	RiskBucketMedium RiskBucket = "Medium"
	RiskBucketLow    RiskBucket = "Low"
)

// IsHigh reports whether the bucket is the high-risk bucket.
func (b RiskBucket) IsHigh() bool { return b == RiskBucketHigh }

// VehicleSummary is one scored vehicle as returned by the scoring service.
// Scores are computed per model; the same vehicle has different scores under
// different models.
type VehicleSummary struct {
	ID              int64      `json:"id"`
	VIN             string     `json:"vin"`
	Model           string     `json:"model"`
	ModelYear       int        `json:"model_year"`
	Mileage         int64      `json:"mileage"`
	AgeMonths       float64    `json:"age_months"`
	DealershipName  string     `json:"dealership_name"`
	Region          string     `json:"region"`
	SupplierCode    string     `json:"supplier_code"`
	PlantCode       string     `json:"plant_code"`
	AvgEngineTemp   float64    `json:"avg_engine_temp"`
	AvgVibration    float64    `json:"avg_vibration"`
	ServicesLast12m int        `json:"services_last_12m"`
	FailureLabel    bool       `json:"failure_label"`
	RiskScore       float64    `json:"risk_score"`
	RiskBucket      RiskBucket `json:"risk_bucket"`
}

// ServiceRecord is a single workshop visit of a vehicle.
type ServiceRecord struct {
	ID              int64   `json:"id"`
	ServiceDate     string  `json:"service_date"`
	Mileage         int64   `json:"mileage"`
	Component       string  `json:"component"`
	FaultCode       string  `json:"fault_code"`
	Action          string  `json:"action"`
	Cost            float64 `json:"cost"`
	IsWarrantyClaim bool    `json:"is_warranty_claim"`
}

// VehicleDetail is a vehicle summary plus its service history, in the order
// returned by the scoring service (newest first).
type VehicleDetail struct {
	Summary        VehicleSummary  `json:"summary"`
	ServiceHistory []ServiceRecord `json:"service_history"`
}
