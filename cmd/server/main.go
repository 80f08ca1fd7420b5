package main

import (
	"log"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/babyparts"
	"github.com/dikaipan/rocdashboard-sub001/internal/config"
	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/engineers"
	"github.com/dikaipan/rocdashboard-sub001/internal/fsl"
	"github.com/dikaipan/rocdashboard-sub001/internal/leveling"
	"github.com/dikaipan/rocdashboard-sub001/internal/machines"
	"github.com/dikaipan/rocdashboard-sub001/internal/metrics"
	"github.com/dikaipan/rocdashboard-sub001/internal/sodata"
	"github.com/dikaipan/rocdashboard-sub001/internal/stockparts"
	"github.com/dikaipan/rocdashboard-sub001/internal/tools"
	"github.com/dikaipan/rocdashboard-sub001/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(metrics.Middleware())

	api := app.Group("/api")

	// Engineers
	api.Get("/engineers", engineers.ListEngineersHandler())
	api.Post("/engineers", engineers.CreateEngineerHandler())
	api.Get("/engineers/:id", engineers.GetEngineerHandler())
	api.Put("/engineers/:id", engineers.UpdateEngineerHandler())
	api.Delete("/engineers/:id", engineers.DeleteEngineerHandler())

	// Machines
	api.Get("/machines", machines.ListMachinesHandler())
	api.Post("/machines", machines.CreateMachineHandler())
	api.Get("/machines/:wsid", machines.GetMachineHandler())
	api.Put("/machines/:wsid", machines.UpdateMachineHandler())
	api.Delete("/machines/:wsid", machines.DeleteMachineHandler())

	// Stock parts + change history
	api.Get("/stock-parts", stockparts.ListStockPartsHandler())
	api.Post("/stock-parts", stockparts.CreateStockPartHandler())
	api.Get("/stock-parts/:part_number", stockparts.GetStockPartHandler())
	api.Put("/stock-parts/:part_number", stockparts.UpdateStockPartHandler())
	api.Delete("/stock-parts/:part_number", stockparts.DeleteStockPartHandler())
	api.Get("/stock-history", stockparts.ListStockHistoryHandler())
	api.Post("/stock-history", stockparts.MirrorStockHistoryHandler())

	// FSL locations (read-only dataset)
	api.Get("/fsl-locations", fsl.ListFSLLocationsHandler())

	// Leveling matrix + monthly machine counts
	api.Get("/leveling", leveling.ListLevelingHandler())
	api.Get("/monthly-machines", leveling.ListMonthlyMachinesHandler())

	// Service order analytics
	api.Get("/so-data", sodata.SummaryHandler())
	api.Get("/so-data/raw", sodata.RawHandler())
	api.Get("/so-data/customer-intelligence", sodata.CustomerIntelligenceHandler())
	api.Get("/so-data/engineer-customer-relationships", sodata.EngineerCustomerHandler())

	// Tools + photos
	api.Get("/tools", tools.ListToolsHandler())
	api.Post("/tools", tools.CreateToolHandler())
	api.Post("/tools/bulk-upsert", tools.BulkUpsertToolsHandler())
	api.Get("/tools/:tools_name", tools.GetToolHandler())
	api.Put("/tools/:tools_name", tools.UpdateToolHandler())
	api.Delete("/tools/:tools_name", tools.DeleteToolHandler())
	api.Post("/upload-photo", tools.UploadPhotoHandler(cfg))
	api.Get("/uploads/tools/:filename", tools.ServePhotoHandler(cfg))

	// Baby parts
	api.Get("/baby-parts", babyparts.ListBabyPartsHandler())
	api.Post("/baby-parts", babyparts.CreateBabyPartHandler())
	api.Get("/baby-parts/:name", babyparts.GetBabyPartHandler())
	api.Put("/baby-parts/:name", babyparts.UpdateBabyPartHandler())
	api.Delete("/baby-parts/:name", babyparts.DeleteBabyPartHandler())

	// CSV import / Excel export
	api.Post("/upload", uploads.UploadHandler())
	api.Get("/export", uploads.ExportHandler())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
