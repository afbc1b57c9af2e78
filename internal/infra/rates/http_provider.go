package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"villarate/internal/app/policies"
	domainavailability "villarate/internal/domain/availability"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
)

// HTTPProvider fetches rate windows from an upstream pricing/availability
// service speaking the provider contract.
type HTTPProvider struct {
	Client  *http.Client
	BaseURL string
	Logger  *slog.Logger
}

type windowPayload struct {
	PropertyInfo propertyInfoPayload         `json:"property_info"`
	BookedDates  []string                    `json:"booked_dates"`
	Rates        map[string]dailyRatePayload `json:"rates"`
}

type propertyInfoPayload struct {
	Capacity              int     `json:"capacity"`
	CleaningFee           float64 `json:"cleaning_fee"`
	ExtraBedRate          float64 `json:"extra_bed_rate"`
	WeekendPremiumPercent float64 `json:"weekend_premium_percent"`
	MinStayWeekday        int     `json:"min_stay_weekday"`
	MinStayWeekend        int     `json:"min_stay_weekend"`
	MinStayPeak           int     `json:"min_stay_peak"`
}

type dailyRatePayload struct {
	BaseRate            float64               `json:"base_rate"`
	WeekendPremium      bool                  `json:"weekend_premium"`
	SeasonalPremium     float64               `json:"seasonal_premium"`
	SeasonalRateApplied []seasonalRulePayload `json:"seasonal_rate_applied"`
}

type seasonalRulePayload struct {
	Name          string  `json:"name"`
	RateType      string  `json:"rate_type"`
	RateValue     float64 `json:"rate_value"`
	Description   string  `json:"description"`
	MinStayNights int     `json:"min_stay_nights"`
}

// Window fetches and decodes the provider payload for one property.
func (p *HTTPProvider) Window(ctx context.Context, propertyID string, from, to time.Time) (domainrates.Window, error) {
	var zero domainrates.Window

	if p == nil || p.Client == nil {
		return zero, errors.New("rates: http client not configured")
	}
	if p.BaseURL == "" {
		return zero, errors.New("rates: provider base url not configured")
	}
	if propertyID == "" {
		return zero, policies.ErrPropertyNotFound
	}

	endpoint := fmt.Sprintf("%s/properties/%s/rates?from=%s&to=%s",
		p.BaseURL,
		url.PathEscape(propertyID),
		daterange.DayKey(from),
		daterange.DayKey(to),
	)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	request.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(request)
	if err != nil {
		p.logError("rate provider request failed", propertyID, err)
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return zero, policies.ErrPropertyNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, string(snippet))
		p.logError("rate provider returned error", propertyID, err)
		return zero, err
	}

	var payload windowPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		p.logError("rate provider decode failed", propertyID, err)
		return zero, err
	}

	return mapWindow(payload), nil
}

func mapWindow(payload windowPayload) domainrates.Window {
	table := make(domainrates.Table, len(payload.Rates))
	for key, rate := range payload.Rates {
		daily := domainrates.DailyRate{
			BaseRate:        roundAmount(rate.BaseRate),
			WeekendPremium:  rate.WeekendPremium,
			SeasonalPremium: roundAmount(rate.SeasonalPremium),
		}
		for _, rule := range rate.SeasonalRateApplied {
			daily.SeasonalRules = append(daily.SeasonalRules, domainrates.SeasonalRule{
				Name:          rule.Name,
				RateType:      rule.RateType,
				RateValue:     rule.RateValue,
				Description:   rule.Description,
				MinStayNights: rule.MinStayNights,
			})
		}
		table[key] = daily
	}
	return domainrates.Window{
		Config: domainrates.PricingConfig{
			Capacity:              payload.PropertyInfo.Capacity,
			CleaningFee:           roundAmount(payload.PropertyInfo.CleaningFee),
			ExtraBedRate:          roundAmount(payload.PropertyInfo.ExtraBedRate),
			WeekendPremiumPercent: payload.PropertyInfo.WeekendPremiumPercent,
			MinStayWeekday:        payload.PropertyInfo.MinStayWeekday,
			MinStayWeekend:        payload.PropertyInfo.MinStayWeekend,
			MinStayPeak:           payload.PropertyInfo.MinStayPeak,
		},
		Rates:  table,
		Booked: domainavailability.NewBookedDates(payload.BookedDates...),
	}
}

func (p *HTTPProvider) logError(msg string, propertyID string, err error) {
	if p.Logger == nil {
		return
	}
	p.Logger.Error(msg, "property_id", propertyID, "error", err)
}

func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}

var _ policies.RateProviderPort = (*HTTPProvider)(nil)
