package dto

import (
	"time"

	domainrates "villarate/internal/domain/rates"
)

type DailyRateDTO struct {
	BaseRate            int64             `json:"base_rate"`
	WeekendPremium      bool              `json:"weekend_premium"`
	SeasonalPremium     int64             `json:"seasonal_premium"`
	SeasonalRateApplied []SeasonalRuleDTO `json:"seasonal_rate_applied,omitempty"`
}

type PropertyInfo struct {
	Capacity              int     `json:"capacity"`
	CleaningFee           int64   `json:"cleaning_fee"`
	ExtraBedRate          int64   `json:"extra_bed_rate"`
	WeekendPremiumPercent float64 `json:"weekend_premium_percent"`
	MinStayWeekday        int     `json:"min_stay_weekday"`
	MinStayWeekend        int     `json:"min_stay_weekend"`
	MinStayPeak           int     `json:"min_stay_peak"`
}

// RateWindow mirrors the provider payload shape so calendar UIs can
// consume it without another mapping layer.
type RateWindow struct {
	PropertyID   string                  `json:"property_id"`
	From         time.Time               `json:"from"`
	To           time.Time               `json:"to"`
	PropertyInfo PropertyInfo            `json:"property_info"`
	BookedDates  []string                `json:"booked_dates"`
	Rates        map[string]DailyRateDTO `json:"rates"`
}

func MapPropertyInfo(cfg domainrates.PricingConfig) PropertyInfo {
	return PropertyInfo{
		Capacity:              cfg.Capacity,
		CleaningFee:           cfg.CleaningFee,
		ExtraBedRate:          cfg.ExtraBedRate,
		WeekendPremiumPercent: cfg.WeekendPremiumPercent,
		MinStayWeekday:        cfg.MinStayWeekday,
		MinStayWeekend:        cfg.MinStayWeekend,
		MinStayPeak:           cfg.MinStayPeak,
	}
}

func MapRateWindow(propertyID string, from, to time.Time, window domainrates.Window) RateWindow {
	rates := make(map[string]DailyRateDTO, len(window.Rates))
	for key, rate := range window.Rates {
		entry := DailyRateDTO{
			BaseRate:        rate.BaseRate,
			WeekendPremium:  rate.WeekendPremium,
			SeasonalPremium: rate.SeasonalPremium,
		}
		for i := range rate.SeasonalRules {
			entry.SeasonalRateApplied = append(entry.SeasonalRateApplied, *MapSeasonalRule(&rate.SeasonalRules[i]))
		}
		rates[key] = entry
	}
	return RateWindow{
		PropertyID:   propertyID,
		From:         from,
		To:           to,
		PropertyInfo: MapPropertyInfo(window.Config),
		BookedDates:  window.Booked.Keys(),
		Rates:        rates,
	}
}
