// Package models defines the data types shared across the backend
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// AssetType discriminates the holding variants.
type AssetType string

const (
	AssetTypeStock AssetType = "stock"
	AssetTypeBond  AssetType = "bond"
	AssetTypeFund  AssetType = "fund"
)

// Valid reports whether the asset type is one of the known variants.
func (a AssetType) Valid() bool {
	switch a {
	case AssetTypeStock, AssetTypeBond, AssetTypeFund:
		return true
	}
	return false
}

// StockDetails holds the stock-variant fields of a holding.
type StockDetails struct {
	Ticker        string  `json:"ticker"`
	Exchange      string  `json:"exchange,omitempty"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
}

// BondDetails holds the bond-variant fields of a holding.
type BondDetails struct {
	Issuer              string    `json:"issuer"`
	MaturityDate        time.Time `json:"maturityDate"`
	FaceValue           float64   `json:"faceValue"`
	CouponRate          float64   `json:"couponRate"`
	InterestPaymentFreq string    `json:"interestPaymentFreq"` // annual, semiannual, quarterly
}

// FundDetails holds the fund-variant fields of a holding.
type FundDetails struct {
	FundName             string  `json:"fundName"`
	FundType             string  `json:"fundType"` // mutual, etf
	FundCode             string  `json:"fundCode,omitempty"`
	Units                float64 `json:"units"`
	PurchasePricePerUnit float64 `json:"purchasePricePerUnit,omitempty"`
}

// Holding is one portfolio entry. Exactly one of Stock, Bond, or Fund is
// populated, selected by AssetType. The web client sends all variant fields
// flattened into a single object; UnmarshalJSON keeps only the fields of the
// active variant so the rest of the code can match exhaustively on AssetType.
type Holding struct {
	ID           string    `json:"id,omitempty" badgerhold:"key"`
	UserID       string    `json:"-" badgerhold:"index"`
	AssetType    AssetType `json:"assetType"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	PurchaseDate time.Time `json:"purchaseDate"`

	Stock *StockDetails `json:"stock,omitempty"`
	Bond  *BondDetails  `json:"bond,omitempty"`
	Fund  *FundDetails  `json:"fund,omitempty"`
}

// holdingWire is the flat shape the web client posts.
type holdingWire struct {
	ID           string    `json:"id"`
	AssetType    AssetType `json:"assetType"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	PurchaseDate time.Time `json:"purchaseDate"`

	Ticker        string  `json:"ticker"`
	Exchange      string  `json:"exchange"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`

	Issuer              string    `json:"issuer"`
	MaturityDate        time.Time `json:"maturityDate"`
	FaceValue           float64   `json:"faceValue"`
	CouponRate          float64   `json:"couponRate"`
	InterestPaymentFreq string    `json:"interestPaymentFreq"`

	FundName             string  `json:"fundName"`
	FundType             string  `json:"fundType"`
	FundCode             string  `json:"fundCode"`
	Units                float64 `json:"units"`
	PurchasePricePerUnit float64 `json:"purchasePricePerUnit"`
}

// UnmarshalJSON accepts either the nested form produced by MarshalJSON or the
// flat form the web client posts, and populates exactly one variant.
func (h *Holding) UnmarshalJSON(data []byte) error {
	// Try the nested form first.
	type nested Holding
	var n nested
	if err := json.Unmarshal(data, &n); err == nil && (n.Stock != nil || n.Bond != nil || n.Fund != nil) {
		*h = Holding(n)
		return nil
	}

	var w holdingWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*h = Holding{
		ID:           w.ID,
		AssetType:    w.AssetType,
		Amount:       w.Amount,
		Currency:     w.Currency,
		PurchaseDate: w.PurchaseDate,
	}

	switch w.AssetType {
	case AssetTypeStock:
		h.Stock = &StockDetails{
			Ticker:        w.Ticker,
			Exchange:      w.Exchange,
			Quantity:      w.Quantity,
			PurchasePrice: w.PurchasePrice,
		}
	case AssetTypeBond:
		h.Bond = &BondDetails{
			Issuer:              w.Issuer,
			MaturityDate:        w.MaturityDate,
			FaceValue:           w.FaceValue,
			CouponRate:          w.CouponRate,
			InterestPaymentFreq: w.InterestPaymentFreq,
		}
	case AssetTypeFund:
		h.Fund = &FundDetails{
			FundName:             w.FundName,
			FundType:             w.FundType,
			FundCode:             w.FundCode,
			Units:                w.Units,
			PurchasePricePerUnit: w.PurchasePricePerUnit,
		}
	}

	return nil
}

// Validate checks the variant invariants: a known asset type, the matching
// variant populated, non-negative numeric fields, and a purchase date not in
// the future relative to now.
func (h *Holding) Validate(now time.Time) error {
	if !h.AssetType.Valid() {
		return fmt.Errorf("unknown asset type %q", h.AssetType)
	}
	if h.Amount < 0 {
		return fmt.Errorf("amount must be non-negative")
	}
	if !h.PurchaseDate.IsZero() && h.PurchaseDate.After(now) {
		return fmt.Errorf("purchase date %s is in the future", h.PurchaseDate.Format("2006-01-02"))
	}

	switch h.AssetType {
	case AssetTypeStock:
		if h.Stock == nil {
			return fmt.Errorf("stock holding missing stock fields")
		}
		if h.Stock.Quantity < 0 {
			return fmt.Errorf("quantity must be non-negative")
		}
	case AssetTypeBond:
		if h.Bond == nil {
			return fmt.Errorf("bond holding missing bond fields")
		}
		if h.Bond.FaceValue < 0 || h.Bond.CouponRate < 0 {
			return fmt.Errorf("bond values must be non-negative")
		}
	case AssetTypeFund:
		if h.Fund == nil {
			return fmt.Errorf("fund holding missing fund fields")
		}
		if h.Fund.Units < 0 {
			return fmt.Errorf("units must be non-negative")
		}
	}

	return nil
}
