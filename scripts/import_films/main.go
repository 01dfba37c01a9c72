package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/importer"
	"github.com/mroshb/filmorate/internal/server"
	"github.com/mroshb/filmorate/internal/services"
	"github.com/mroshb/filmorate/pkg/logger"
)

func main() {
	path := flag.String("file", "", "path to the .xlsx workbook to import")
	flag.Parse()
	if *path == "" {
		log.Fatal("usage: import_films -file films.xlsx")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	logger.Init()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if cfg.StorageDriver == config.StorageMemory {
		log.Fatal("STORAGE_DRIVER must be sqlite or postgres; in-memory imports are lost on exit")
	}

	stores, err := server.OpenStores(cfg)
	if err != nil {
		log.Fatal("failed to open storage: ", err)
	}
	defer stores.Close()

	popular := server.OpenPopularCache(cfg)
	defer popular.Close()
	films := services.NewFilmService(stores.Films, stores.Users, stores.Catalog, popular, cfg.PopularDefaultCount)

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	summary, err := importer.Import(context.Background(), f, films)
	if err != nil {
		log.Fatal("import failed: ", err)
	}

	for _, rowErr := range summary.Failed {
		fmt.Println(rowErr.Error())
	}
	fmt.Printf("Imported %d of %d films from sheet %s.\n", summary.Imported, summary.Total, summary.Sheet)
}
