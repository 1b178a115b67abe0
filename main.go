package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/ringsaturn/tzf"

	"backend/chat"
	"backend/llm"
	"backend/routes"
	"backend/travel"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	app := pocketbase.New()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := routes.EnsureProgramsCollection(se.App); err != nil {
			return err
		}

		client := llm.NewFromEnv()
		logger := se.App.Logger()

		var finder tzf.F
		if f, err := tzf.NewDefaultFinder(); err != nil {
			logger.Warn("timezone finder unavailable, exports will use UTC", "error", err)
		} else {
			finder = f
		}

		var providers []travel.Provider
		if p := travel.NewSupabaseProvider(); p != nil {
			providers = append(providers, p)
		}
		if p := travel.NewViatorProvider(); p != nil {
			providers = append(providers, p)
		}

		api := &routes.API{
			Generator:     travel.NewGenerator(client, logger, providers...),
			Conversations: chat.NewManager(client, logger),
			Timezones:     finder,
		}
		api.Bind(se)

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
