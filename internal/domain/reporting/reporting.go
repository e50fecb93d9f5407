// Package reporting serves the read-only daily report screens: predefined
// SQL measures evaluated on demand, returned as JSON or CSV.
package reporting

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinichq/internal/platform/auth"
)

// MeasureDefinition defines a reporting measure with its SQL query. Every
// parameter listed in Parameters binds positionally, in order, and defaults
// to today's date when omitted.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "daily-visits",
		Name:        "Daily Visit Report",
		Description: "Visits for a day with queue number, patient, status and billed total",
		SQL: `SELECT q.queue_number, t.vn, t.hncode,
			p.prename || p.first_name || ' ' || p.last_name AS patient_name,
			t.status, t.ucs_card,
			COALESCE((SELECT SUM(amount) FROM treatment_item i WHERE i.vn = t.vn), 0) AS total
		FROM treatment t
		JOIN queue_entry q ON q.id = t.queue_id
		LEFT JOIN patient p ON p.hncode = t.hncode
		WHERE t.visit_date = $1::date
		ORDER BY q.queue_number`,
		Parameters: []string{"date"},
	},
	{
		ID:          "daily-revenue",
		Name:        "Daily Revenue",
		Description: "Payment count and totals for a day",
		SQL: `SELECT COUNT(*) AS payments, COALESCE(SUM(total), 0) AS gross,
			COALESCE(SUM(discount), 0) AS discount, COALESCE(SUM(net), 0) AS net
		FROM payment WHERE paid_at::date = $1::date`,
		Parameters: []string{"date"},
	},
	{
		ID:          "queue-summary",
		Name:        "Queue Summary",
		Description: "Queue entries for a day grouped by status",
		SQL: `SELECT status, COUNT(*) AS total FROM queue_entry
		WHERE queue_date = $1::date GROUP BY status ORDER BY total DESC`,
		Parameters: []string{"date"},
	},
	{
		ID:          "drug-usage",
		Name:        "Drug Usage",
		Description: "Dispensed drugs for a day with quantity and value, most used first",
		SQL: `SELECT i.code, i.name, SUM(i.qty) AS qty, SUM(i.amount) AS amount
		FROM treatment_item i
		JOIN treatment t ON t.vn = i.vn
		WHERE i.kind = 'drug' AND t.visit_date = $1::date
		GROUP BY i.code, i.name ORDER BY qty DESC`,
		Parameters: []string{"date"},
	},
	{
		ID:          "ucs-visits",
		Name:        "Insurance Visit Report",
		Description: "Visits billed under the universal coverage scheme for a day",
		SQL: `SELECT t.vn, t.hncode,
			p.prename || p.first_name || ' ' || p.last_name AS patient_name, t.status
		FROM treatment t
		LEFT JOIN patient p ON p.hncode = t.hncode
		WHERE t.ucs_card = 'Y' AND t.visit_date = $1::date
		ORDER BY t.vn`,
		Parameters: []string{"date"},
	},
	{
		ID:          "drug-stock",
		Name:        "Drug Stock Report",
		Description: "On-hand quantity per drug, lowest stock first",
		SQL: `SELECT code, name, trade_name, unit, stock, price
		FROM drug ORDER BY stock ASC, code`,
		Parameters: []string{},
	},
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Total registered patients",
		SQL:         `SELECT COUNT(*) AS total FROM patient`,
		Parameters:  []string{},
	},
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}

type Handler struct {
	pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports", auth.RequireRole("admin", "doctor", "cashier"))
	g.GET("/measures", h.ListMeasures)
	g.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure and returns JSON, or CSV when
// ?format=csv is given.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	args := make([]interface{}, 0, len(measure.Parameters))
	for _, p := range measure.Parameters {
		v := c.QueryParam(p)
		if v == "" && p == "date" {
			v = time.Now().Format("2006-01-02")
		}
		if v == "" {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("missing parameter: %s", p))
		}
		params[p] = v
		args = append(args, v)
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL, args...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	if c.QueryParam("format") == "csv" {
		return h.writeCSV(c, measure, results)
	}

	return c.JSON(http.StatusOK, MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
		Parameters:  params,
	})
}

func (h *Handler) executeSQL(ctx context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}
	if results == nil {
		results = []map[string]interface{}{}
	}
	return results, rows.Err()
}

func (h *Handler) writeCSV(c echo.Context, measure *MeasureDefinition, results []map[string]interface{}) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.csv"`, measure.ID))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := CSVHeader(results)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range results {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = fmt.Sprintf("%v", row[col])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// CSVHeader derives a stable column order from result rows.
func CSVHeader(results []map[string]interface{}) []string {
	if len(results) == 0 {
		return nil
	}
	header := make([]string, 0, len(results[0]))
	for col := range results[0] {
		header = append(header, col)
	}
	sort.Strings(header)
	return header
}
