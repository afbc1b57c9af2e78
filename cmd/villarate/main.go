package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	quotesapp "villarate/internal/app/handlers/quotes"
	"villarate/internal/app/middleware"
	"villarate/internal/app/policies"
	"villarate/internal/app/queries"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
	"villarate/internal/domain/shared/money"
	"villarate/internal/infra/config"
	ginserver "villarate/internal/infra/http/gin"
	"villarate/internal/infra/obs"
	ratesinfra "villarate/internal/infra/rates"
	"villarate/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.ProviderMode = config.ProviderModeMemory
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	provider, memoryProvider := buildProvider(cfg, logger)
	if memoryProvider != nil {
		fixturesPath := cfg.FixturesPath
		if fixturesPath == "" {
			fixturesPath = defaultFixturesPath()
		}
		if err := loadPropertyFixtures(memoryProvider, fixturesPath, logger); err != nil {
			logger.Warn("property fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	handlers := buildHandlers(provider, cfg, logger)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "provider", cfg.ProviderMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildProvider(cfg config.Config, logger *slog.Logger) (policies.RateProviderPort, *memory.Provider) {
	if cfg.ProviderMode == config.ProviderModeHTTP {
		return &ratesinfra.HTTPProvider{
			Client:  &http.Client{Timeout: cfg.ProviderTimeout},
			BaseURL: strings.TrimRight(cfg.ProviderURL, "/"),
			Logger:  logger,
		}, nil
	}
	provider := memory.NewProvider()
	return provider, provider
}

func buildHandlers(provider policies.RateProviderPort, cfg config.Config, logger *slog.Logger) ginserver.Handlers {
	formatter := money.IDRFormatter()

	bus := queries.NewInMemoryBus()
	queries.RegisterHandler(bus, quotesapp.GetQuoteQuery{}.Key(), &quotesapp.GetQuoteHandler{
		Provider:  provider,
		Formatter: formatter,
	})
	queries.RegisterHandler(bus, quotesapp.GetMinStayQuery{}.Key(), &quotesapp.GetMinStayHandler{
		Provider: provider,
	})
	queries.RegisterHandler(bus, quotesapp.GetRateWindowQuery{}.Key(), &quotesapp.GetRateWindowHandler{
		Provider: provider,
		MaxDays:  cfg.WindowMaxDays,
	})

	busWithMiddleware := middleware.ChainQueries(bus, middleware.Logging(logger))

	return ginserver.Handlers{
		Quotes: ginserver.QuoteHandler{Queries: busWithMiddleware},
	}
}

func loadPropertyFixtures(provider *memory.Provider, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("property fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("property fixtures file empty", "path", path)
		return nil
	}

	var fixtures []propertyFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		property, err := fx.toProperty()
		if err != nil {
			logger.Error("fixture invalid", "property_id", fx.ID, "error", err)
			continue
		}
		if err := provider.Save(property); err != nil {
			logger.Error("cannot store fixture property", "property_id", fx.ID, "error", err)
			continue
		}
		logger.Info("property fixture imported", "property_id", fx.ID)
	}
	return nil
}

type propertyFixture struct {
	ID                    string                `json:"id"`
	Capacity              int                   `json:"capacity"`
	CleaningFee           int64                 `json:"cleaning_fee"`
	ExtraBedRate          int64                 `json:"extra_bed_rate"`
	WeekendPremiumPercent float64               `json:"weekend_premium_percent"`
	MinStayWeekday        int                   `json:"min_stay_weekday"`
	MinStayWeekend        int                   `json:"min_stay_weekend"`
	MinStayPeak           int                   `json:"min_stay_peak"`
	BaseRate              int64                 `json:"base_rate"`
	WeekendDays           []string              `json:"weekend_days"`
	BookedDates           []string              `json:"booked_dates"`
	SeasonalRates         []seasonalRateFixture `json:"seasonal_rates"`
}

type seasonalRateFixture struct {
	Name          string  `json:"name"`
	RateType      string  `json:"rate_type"`
	RateValue     float64 `json:"rate_value"`
	Description   string  `json:"description"`
	MinStayNights int     `json:"min_stay_nights"`
	From          string  `json:"from"`
	Until         string  `json:"until"`
}

func (fx propertyFixture) toProperty() (memory.Property, error) {
	property := memory.Property{
		ID: fx.ID,
		Config: domainrates.PricingConfig{
			Capacity:              fx.Capacity,
			CleaningFee:           fx.CleaningFee,
			ExtraBedRate:          fx.ExtraBedRate,
			WeekendPremiumPercent: fx.WeekendPremiumPercent,
			MinStayWeekday:        fx.MinStayWeekday,
			MinStayWeekend:        fx.MinStayWeekend,
			MinStayPeak:           fx.MinStayPeak,
		},
		BaseRate:    fx.BaseRate,
		BookedDates: append([]string(nil), fx.BookedDates...),
	}
	for _, raw := range fx.WeekendDays {
		wd, err := parseWeekday(raw)
		if err != nil {
			return memory.Property{}, err
		}
		property.WeekendDays = append(property.WeekendDays, wd)
	}
	for _, sr := range fx.SeasonalRates {
		from, err := daterange.ParseDay(sr.From)
		if err != nil {
			return memory.Property{}, fmt.Errorf("seasonal rate %q from: %w", sr.Name, err)
		}
		until, err := daterange.ParseDay(sr.Until)
		if err != nil {
			return memory.Property{}, fmt.Errorf("seasonal rate %q until: %w", sr.Name, err)
		}
		property.SeasonalSpans = append(property.SeasonalSpans, memory.SeasonalSpan{
			Rule: domainrates.SeasonalRule{
				Name:          sr.Name,
				RateType:      sr.RateType,
				RateValue:     sr.RateValue,
				Description:   sr.Description,
				MinStayNights: sr.MinStayNights,
			},
			From:  from,
			Until: until,
		})
	}
	return property, nil
}

func parseWeekday(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("invalid weekday: %q", raw)
	}
}

func defaultFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "properties.json"),
		filepath.Join("..", "data", "properties.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
