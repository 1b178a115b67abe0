package routes

import (
	"net/http"
	"sort"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/samber/lo"

	"backend/travel"
)

const programsCollection = "programs"

// EnsureProgramsCollection creates the archive collection on first boot.
func EnsureProgramsCollection(app core.App) error {
	if _, err := app.FindCollectionByNameOrId(programsCollection); err == nil {
		return nil
	}

	collection := core.NewBaseCollection(programsCollection)
	collection.Fields.Add(
		&core.JSONField{Name: "document", MaxSize: 2 << 20},
		&core.NumberField{Name: "total_cost"},
		&core.TextField{Name: "currency", Max: 8},
		&core.TextField{Name: "version", Max: 16},
		&core.TextField{Name: "generated_at", Max: 64},
		&core.AutodateField{Name: "created", OnCreate: true},
	)
	return app.Save(collection)
}

// saveProgram archives one generated program. Failures are the caller's to
// log; generation never depends on the archive.
func saveProgram(app core.App, program *travel.TravelProgram) error {
	collection, err := app.FindCollectionByNameOrId(programsCollection)
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("document", program)
	record.Set("total_cost", program.TotalCost)
	record.Set("currency", program.Currency)
	record.Set("version", program.Version)
	record.Set("generated_at", program.GeneratedAt)
	return app.Save(record)
}

// ListPrograms returns archived program summaries, newest first, optionally
// filtered by currency.
func (api *API) ListPrograms(e *core.RequestEvent) error {
	var exprs []dbx.Expression
	if currency := e.Request.URL.Query().Get("currency"); currency != "" {
		exprs = append(exprs, dbx.NewExp("currency = {:currency}", dbx.Params{"currency": currency}))
	}

	records, err := e.App.FindAllRecords(programsCollection, exprs...)
	if err != nil {
		e.App.Logger().Error("unable to list archived programs", "error", err)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": "unable to list archived programs",
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].GetDateTime("created").Time().After(records[j].GetDateTime("created").Time())
	})

	summaries := lo.Map(records, func(record *core.Record, _ int) map[string]any {
		return map[string]any{
			"id":           record.Id,
			"total_cost":   record.GetFloat("total_cost"),
			"currency":     record.GetString("currency"),
			"version":      record.GetString("version"),
			"generated_at": record.GetString("generated_at"),
		}
	})

	return e.JSON(http.StatusOK, map[string]any{
		"programs": summaries,
	})
}
