package entity

import "time"

// Supply chain stages for a traceability batch.
const (
	StageCollection     = "collection"
	StageTransportation = "transportation"
	StageProcessing     = "processing"
	StageQualityCheck   = "quality_check"
	StagePackaging      = "packaging"
	StageShipping       = "shipping"
	StageDelivery       = "delivery"
)

// StageLocation where a supply-chain stage happened.
type StageLocation struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// SupplyChainStage one step of a batch's provenance record.
type SupplyChainStage struct {
	Stage     string        `json:"stage"`
	Location  StageLocation `json:"location"`
	Timestamp time.Time     `json:"timestamp"`
	HandlerID string        `json:"handler,omitempty"`
	Details   string        `json:"details,omitempty"`
}

// TempleSource where the batch's flowers were collected.
type TempleSource struct {
	TempleName      string  `json:"temple_name"`
	District        string  `json:"district,omitempty"`
	CollectionDate  string  `json:"collection_date,omitempty"`
	FlowersWeightKg float64 `json:"flowers_weight_kg,omitempty"`
}

// SHGProcessing which unit processed the batch and how.
type SHGProcessing struct {
	SHGID            string `json:"shg_id,omitempty"`
	ProcessingMethod string `json:"processing_method,omitempty"`
	ProcessingDate   string `json:"processing_date,omitempty"`
}

// QRCode public scan endpoint for a batch.
type QRCode struct {
	URL       string `json:"url,omitempty"`
	ScanCount int64  `json:"scan_count"`
}

// Traceability links a product batch to its supply-chain provenance.
// Append-only, queried by product and by batch number.
type Traceability struct {
	ID          string
	ProductID   string
	BatchNumber string
	SupplyChain []SupplyChainStage
	Temple      TempleSource
	Processing  SHGProcessing
	QR          QRCode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
