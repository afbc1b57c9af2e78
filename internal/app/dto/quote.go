package dto

import (
	"time"

	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
	"villarate/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// FormattedAmounts is the presentation block booking pages render
// verbatim; it is derived from the calculation, never the reverse.
type FormattedAmounts struct {
	TotalAmount string `json:"total_amount"`
	PerNight    string `json:"per_night"`
}

type SeasonalRuleDTO struct {
	Name          string  `json:"name"`
	RateType      string  `json:"rate_type"`
	RateValue     float64 `json:"rate_value"`
	Description   string  `json:"description"`
	MinStayNights int     `json:"min_stay_nights"`
}

type MinStayResolution struct {
	MinStay      int              `json:"min_stay"`
	Reason       string           `json:"reason"`
	SeasonalRule *SeasonalRuleDTO `json:"seasonal_rate_applied,omitempty"`
	Nights       int              `json:"nights"`
	Satisfied    bool             `json:"satisfied"`
}

type Quote struct {
	QuoteID    string    `json:"quote_id"`
	PropertyID string    `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`

	Nights    int `json:"nights"`
	ExtraBeds int `json:"extra_beds"`

	BaseAmount      MoneyDTO `json:"base_amount"`
	WeekendPremium  MoneyDTO `json:"weekend_premium"`
	SeasonalPremium MoneyDTO `json:"seasonal_premium"`
	ExtraBedAmount  MoneyDTO `json:"extra_bed_amount"`
	CleaningFee     MoneyDTO `json:"cleaning_fee"`
	Subtotal        MoneyDTO `json:"subtotal"`
	TaxAmount       MoneyDTO `json:"tax_amount"`
	TotalAmount     MoneyDTO `json:"total_amount"`

	Formatted FormattedAmounts  `json:"formatted"`
	MinStay   MinStayResolution `json:"min_stay"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

func MapSeasonalRule(rule *domainrates.SeasonalRule) *SeasonalRuleDTO {
	if rule == nil {
		return nil
	}
	return &SeasonalRuleDTO{
		Name:          rule.Name,
		RateType:      rule.RateType,
		RateValue:     rule.RateValue,
		Description:   rule.Description,
		MinStayNights: rule.MinStayNights,
	}
}

func MapMinStayResolution(res domainrates.Resolution) MinStayResolution {
	return MinStayResolution{
		MinStay:      res.MinStay,
		Reason:       string(res.Reason),
		SeasonalRule: MapSeasonalRule(res.SeasonalRule),
		Nights:       res.Nights,
		Satisfied:    res.Satisfied,
	}
}

func MapQuote(
	quoteID string,
	propertyID string,
	dr daterange.DateRange,
	guests int,
	calc domainrates.Calculation,
	res domainrates.Resolution,
	formatter money.Formatter,
) Quote {
	return Quote{
		QuoteID:         quoteID,
		PropertyID:      propertyID,
		CheckIn:         dr.CheckIn,
		CheckOut:        dr.CheckOut,
		Guests:          guests,
		Nights:          calc.Nights,
		ExtraBeds:       calc.ExtraBeds,
		BaseAmount:      MapMoney(calc.BaseAmount),
		WeekendPremium:  MapMoney(calc.WeekendPremium),
		SeasonalPremium: MapMoney(calc.SeasonalPremium),
		ExtraBedAmount:  MapMoney(calc.ExtraBedAmount),
		CleaningFee:     MapMoney(calc.CleaningFee),
		Subtotal:        MapMoney(calc.Subtotal),
		TaxAmount:       MapMoney(calc.TaxAmount),
		TotalAmount:     MapMoney(calc.TotalAmount),
		Formatted: FormattedAmounts{
			TotalAmount: formatter.Format(calc.TotalAmount),
			PerNight:    formatter.Format(calc.PerNight()),
		},
		MinStay: MapMinStayResolution(res),
	}
}
