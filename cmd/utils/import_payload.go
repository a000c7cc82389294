package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/infrastructure/config"
	"flightsnap-service/internal/infrastructure/persistence"
	"flightsnap-service/internal/interface/repository"
	"flightsnap-service/internal/usecase"
	"flightsnap-service/pkg/logger"
	"flightsnap-service/pkg/metrics"
	"flightsnap-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	file := flag.String("file", "", "search API response (JSON) to import")
	url := flag.String("url", "", "request URL the response came from")
	rangeStart := flag.String("range-start", "", "first departure date searched (YYYY-MM-DD)")
	rangeEnd := flag.String("range-end", "", "last departure date searched (YYYY-MM-DD)")
	current := flag.Bool("current", false, "mark the imported search as current")
	clearFlags := flag.Bool("clear", false, "clear current flags before importing")
	list := flag.Bool("list", false, "list stored searches")
	deleteID := flag.String("delete", "", "delete the search with this id")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := persistence.NewGormDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer persistence.Close(db)

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	appLog := logger.NewLogger(cfg.LogLevel)
	defer appLog.Sync()

	store := usecase.NewSearchStore(
		repository.NewGormTransactor(db),
		repository.NewGormSearchRepository(db),
		repository.NewGormItineraryRepository(db),
		repository.NewGormRouteRepository(db),
		repository.NewGormRouteChangeRepository(db),
		utils.NewSearchResultParser(appLog),
		metrics.NewMetrics(cfg.MetricsNamespace, prometheus.NewRegistry()),
		appLog,
	)

	ctx := context.Background()

	if *deleteID != "" {
		search, err := store.FindSearch(ctx, *deleteID)
		if err != nil {
			log.Fatalf("Failed to find search %s: %v", *deleteID, err)
		}
		if err := store.Delete(ctx, search); err != nil {
			log.Fatalf("Failed to delete search: %v", err)
		}
		fmt.Printf("Deleted search %s\n", *deleteID)
	}

	if *clearFlags {
		cleared, err := store.ClearCurrentFlags(ctx)
		if err != nil {
			log.Fatalf("Failed to clear current flags: %v", err)
		}
		fmt.Printf("Cleared %d current flag(s)\n", cleared)
	}

	if *file != "" {
		body, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}

		meta := entity.SearchMeta{URL: *url, Current: *current}
		if meta.RangeStart, err = utils.ParseDate(*rangeStart); err != nil {
			log.Fatalf("Invalid -range-start: %v", err)
		}
		if meta.RangeEnd, err = utils.ParseDate(*rangeEnd); err != nil {
			log.Fatalf("Invalid -range-end: %v", err)
		}

		stored, err := store.InsertJSON(ctx, body, meta)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", *file, err)
		}
		if stored {
			fmt.Printf("Imported %s\n", *file)
		} else {
			fmt.Printf("Search in %s is already stored, nothing imported\n", *file)
		}
	}

	if *list {
		searches, err := store.ListSearches(ctx)
		if err != nil {
			log.Fatalf("Failed to list searches: %v", err)
		}
		for _, s := range searches {
			fmt.Printf("%s  %s  results=%d  current=%t  range=%s..%s\n",
				s.SearchID,
				s.CapturedAt.Format(time.RFC3339),
				s.Results,
				s.Current,
				formatDate(s.RangeStart),
				formatDate(s.RangeEnd))
		}
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(utils.DATE_LAYOUT)
}
