package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"villarate/internal/app/dto"
	quotesapp "villarate/internal/app/handlers/quotes"
	"villarate/internal/app/policies"
	"villarate/internal/app/queries"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
)

// QuoteHandler wires the quote queries to HTTP.
type QuoteHandler struct {
	Queries queries.Bus
}

func (h QuoteHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote handler unavailable"})
		return
	}
	propertyID := c.Param("id")
	checkIn, checkOut, ok := parseStayDates(c)
	if !ok {
		return
	}
	query := quotesapp.GetQuoteQuery{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     parseGuests(c.Query("guests")),
	}
	result, err := queries.Ask[quotesapp.GetQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h QuoteHandler) MinStay(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote handler unavailable"})
		return
	}
	propertyID := c.Param("id")
	checkIn, checkOut, ok := parseStayDates(c)
	if !ok {
		return
	}
	query := quotesapp.GetMinStayQuery{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	result, err := queries.Ask[quotesapp.GetMinStayQuery, dto.MinStayResolution](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h QuoteHandler) RateWindow(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote handler unavailable"})
		return
	}
	propertyID := c.Param("id")
	from, _ := parseDayParam(c.Query("from"))
	to, _ := parseDayParam(c.Query("to"))
	query := quotesapp.GetRateWindowQuery{
		PropertyID: propertyID,
		From:       from,
		To:         to,
	}
	result, err := queries.Ask[quotesapp.GetRateWindowQuery, dto.RateWindow](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}

func parseStayDates(c *gin.Context) (time.Time, time.Time, bool) {
	checkIn, ok := parseDayParam(c.Query("check_in"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be a YYYY-MM-DD date"})
		return time.Time{}, time.Time{}, false
	}
	checkOut, ok := parseDayParam(c.Query("check_out"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be a YYYY-MM-DD date"})
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}

func parseDayParam(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	day, err := daterange.ParseDay(raw)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func parseGuests(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	return value
}

// respondQuoteError maps the estimation taxonomy onto stable HTTP codes.
func respondQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policies.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "property_not_found"})
	case errors.Is(err, quotesapp.ErrPropertyIDRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "property_id_required"})
	case errors.Is(err, domainrates.ErrInvalidRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "invalid_range"})
	case errors.Is(err, domainrates.ErrInvalidGuests):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "invalid_guests"})
	case errors.Is(err, domainrates.ErrDatesUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "dates_unavailable"})
	case errors.Is(err, domainrates.ErrMissingRate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "missing_rate"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
