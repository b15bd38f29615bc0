package catalogue

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FeedRecord is one product entry of the distributor catalogue feed.
// Numeric fields use NullDecimal because the feed leaves them null for
// some product families.
type FeedRecord struct {
	SKU                 string              `json:"SKU"`
	PartNumber          string              `json:"PartNumber"`
	Description         string              `json:"Description"`
	ExtendedDescription string              `json:"ExtendedDescription"`
	EAN                 string              `json:"EAN"`
	Grouping            string              `json:"Grouping"`
	StandardDealerPrice decimal.NullDecimal `json:"StandardDealerPrice"`
	Fees                decimal.NullDecimal `json:"Fees"`
	StockQty            decimal.NullDecimal `json:"StockQty"`
	Depth               decimal.NullDecimal `json:"Depth"`
	Length              decimal.NullDecimal `json:"Length"`
	Height              decimal.NullDecimal `json:"Height"`
	VatRate             decimal.NullDecimal `json:"VatRate"`

	// GrossWeight is raw because the feed mixes numbers with free text
	GrossWeight json.RawMessage `json:"GrossWeight"`
}

// Code returns the product identifier, falling back to the part number
// when the SKU is missing. Empty means the record cannot be identified.
func (r *FeedRecord) Code() string {
	if r.SKU != "" {
		return r.SKU
	}
	return r.PartNumber
}

// Cost returns the purchase cost: dealer price plus fees
func (r *FeedRecord) Cost() decimal.Decimal {
	return value(r.StandardDealerPrice).Add(value(r.Fees))
}

// Volume returns depth x length x height divided by 1000
func (r *FeedRecord) Volume() decimal.Decimal {
	return value(r.Depth).
		Mul(value(r.Length)).
		Mul(value(r.Height)).
		Div(decimal.NewFromInt(1000))
}

// Stock returns the supplier stock quantity, zero when absent
func (r *FeedRecord) Stock() decimal.Decimal {
	return value(r.StockQty)
}

// Weight parses the gross weight, reporting false for absent or
// non-numeric values.
func (r *FeedRecord) Weight() (decimal.Decimal, bool) {
	if len(r.GrossWeight) == 0 || string(r.GrossWeight) == "null" {
		return decimal.Zero, false
	}
	var weight decimal.Decimal
	if err := json.Unmarshal(r.GrossWeight, &weight); err != nil {
		return decimal.Zero, false
	}
	return weight, true
}

func value(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
