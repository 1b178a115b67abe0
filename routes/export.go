package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"

	"backend/travel"
)

// ExportProgram renders a generated TravelProgram as an iCalendar document:
// one event per activity, scheduled sequentially from 09:00 local time, plus
// one event per transport leg. Destination timezones are resolved from the
// plan's coordinates when available, UTC otherwise.
func (api *API) ExportProgram(e *core.RequestEvent) error {
	var program travel.TravelProgram
	if err := json.NewDecoder(e.Request.Body).Decode(&program); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//backend//travel-program//EN")

	for _, plan := range program.Destinations {
		loc := api.destinationLocation(plan)

		for _, day := range plan.Days {
			start := time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 9, 0, 0, 0, loc)
			for _, activity := range day.Activities {
				end := start.Add(time.Duration(activity.DurationHours * float64(time.Hour)))

				event := cal.AddEvent(uuid.NewString() + "@backend")
				event.SetCreatedTime(time.Now().UTC())
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetSummary(activity.Name)
				event.SetLocation(activity.Location)
				event.SetDescription(fmt.Sprintf("%s (%s, %s)",
					activity.Description,
					travel.FormatDuration(activity.DurationHours),
					travel.FormatCurrency(activity.Cost, program.Currency)))

				start = end
			}
		}

		for _, leg := range plan.Transportation {
			if len(plan.Days) == 0 {
				continue
			}
			day := plan.Days[len(plan.Days)-1].Date
			departure := time.Date(day.Year(), day.Month(), day.Day(),
				leg.DepartureTime.Hour(), leg.DepartureTime.Minute(), 0, 0, loc)
			arrival := time.Date(day.Year(), day.Month(), day.Day(),
				leg.ArrivalTime.Hour(), leg.ArrivalTime.Minute(), 0, 0, loc)

			event := cal.AddEvent(uuid.NewString() + "@backend")
			event.SetCreatedTime(time.Now().UTC())
			event.SetStartAt(departure)
			event.SetEndAt(arrival)
			event.SetSummary(fmt.Sprintf("%s: %s → %s", leg.Type, leg.FromLocation, leg.ToLocation))
			event.SetDescription(travel.FormatCurrency(leg.Cost, program.Currency))
		}
	}

	e.Response.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	e.Response.Header().Set("Content-Disposition", `attachment; filename="travel-program.ics"`)
	return e.String(http.StatusOK, cal.Serialize())
}

func (api *API) destinationLocation(plan travel.DestinationPlan) *time.Location {
	if api.Timezones == nil || (plan.Latitude == 0 && plan.Longitude == 0) {
		return time.UTC
	}
	name := api.Timezones.GetTimezoneName(plan.Longitude, plan.Latitude)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
