package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/diagnose"
	"svw.info/forestfill/internal/domain"
	"svw.info/forestfill/internal/infrastructure/storage"
	"svw.info/forestfill/internal/preview"
	"svw.info/forestfill/internal/region"
	"svw.info/forestfill/internal/solver"
	"svw.info/forestfill/internal/usecase"
	"svw.info/forestfill/internal/validator"
)

// demoGrid is an 8x8 terrain with a 6x6 placeholder block, enough to watch
// the engine lay out a full fill pattern with a border frame.
func demoGrid() *domain.Grid {
	g := domain.NewGrid(8, 8, 0)
	for row := 1; row < 7; row++ {
		for col := 1; col < 7; col++ {
			g.Set(row, col, catalog.Placeholder)
		}
	}
	return g
}

func parseCoord(s string) (domain.Coord, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ",", 2)
	if len(parts) != 2 {
		return domain.Coord{}, fmt.Errorf("coordinate %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	return domain.Coord{Row: row, Col: col}, nil
}

func parseOrientation(s string) (domain.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return domain.OrientationAuto, nil
	case "0", "phase0":
		return domain.Orientation0, nil
	case "1", "phase1":
		return domain.Orientation1, nil
	case "2", "phase2":
		return domain.Orientation2, nil
	case "3", "phase3":
		return domain.Orientation3, nil
	default:
		return 0, fmt.Errorf("orientation %q: want auto or 0-3", s)
	}
}

func main() {
	dataDir := flag.String("data", "./data", "snapshot/report directory")
	id := flag.String("id", "", "snapshot ID to load (empty: built-in demo grid)")
	at := flag.String("at", "", "fill only the region at row,col (empty: all regions)")
	orientStr := flag.String("orientation", "auto", "force phase: auto|0|1|2|3")
	maxMismatches := flag.Int("max-mismatches", 0, "acceptability threshold for residual mismatches")
	apply := flag.Bool("apply", false, "save the filled grid as <id>-filled")
	previewPath := flag.String("preview", "", "write a WebP preview of the filled grid")
	scale := flag.Int("scale", 8, "preview pixels per tile")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	level, err := zerolog.ParseLevel(strings.ToLower(*levelStr))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	orient, err := parseOrientation(*orientStr)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -orientation")
	}

	st := storage.NewFS(*dataDir)
	uc := usecase.NewService(
		solver.NewArcFiller(),
		region.New(),
		validator.New(),
		diagnose.New(),
		st,
		preview.NewWebP(*scale),
	)
	ctx := context.Background()

	var g *domain.Grid
	snapID := *id
	if snapID == "" {
		snapID = "demo"
		g = demoGrid()
		log.Info().Msg("no snapshot ID given, using built-in demo grid")
	} else {
		snap, err := uc.LoadSnapshot(ctx, snapID)
		if err != nil {
			log.Fatal().Err(err).Str("id", snapID).Msg("load snapshot")
		}
		g = snap.Grid()
	}

	opts := domain.FillOptions{Orientation: orient, MaxMismatches: *maxMismatches}
	var results []*domain.FillResult
	if *at != "" {
		coord, err := parseCoord(*at)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -at")
		}
		res, stats, err := uc.FillAt(ctx, g, coord, opts)
		if err != nil {
			log.Fatal().Err(err).Msg("fill failed")
		}
		results = append(results, res)
		log.Info().Dur("dur", stats.Duration).Int("cells", stats.Cells).Msg("region filled")
	} else {
		all, st, err := uc.FillAll(ctx, g, opts)
		if err != nil {
			log.Fatal().Err(err).Msg("fill failed")
		}
		results = all
		log.Info().
			Int("regions", len(all)).
			Int("cells", st.Cells).
			Int("iterations", st.Iterations).
			Dur("dur", st.Duration).
			Msg("fill complete")
	}

	unsatisfied := 0
	for i, res := range results {
		ev := log.Info()
		if res.Status == domain.StatusUnsatisfiable {
			ev = log.Warn()
			unsatisfied++
		}
		ev.Int("region", i).
			Stringer("status", res.Status).
			Stringer("orientation", res.Orientation).
			Int("mismatches", res.Mismatches).
			Int("innerBorder", res.InnerBorder).
			Int("fillTiles", res.FillTiles).
			Msg("region result")
	}

	filled := uc.Apply(g, results)
	if ok, bad, err := uc.Validate(ctx, filled); err != nil {
		log.Error().Err(err).Msg("validate")
	} else if !ok {
		log.Warn().Int("mismatches", len(bad)).Msg("filled grid has residual edge mismatches")
	}

	report := &domain.Report{SnapshotID: snapID, CreatedAt: time.Now().Unix()}
	for _, res := range results {
		report.Regions = append(report.Regions, domain.RegionReportOf(res))
	}
	if err := uc.SaveReport(ctx, report); err != nil {
		log.Error().Err(err).Msg("save report")
	}

	if *apply {
		snap := domain.SnapshotOf(filled, snapID+"-filled", snapID+" (filled)")
		snap.CreatedAt = time.Now().Unix()
		if err := uc.SaveSnapshot(ctx, snap); err != nil {
			log.Fatal().Err(err).Msg("save filled snapshot")
		}
		log.Info().Str("id", snap.ID).Msg("filled snapshot saved")
	}

	if *previewPath != "" {
		data, err := uc.RenderPreview(ctx, g, mergeAssignments(results))
		if err != nil {
			log.Fatal().Err(err).Msg("render preview")
		}
		if err := os.WriteFile(*previewPath, data, 0o644); err != nil {
			log.Fatal().Err(err).Msg("write preview")
		}
		log.Info().Str("path", *previewPath).Msg("preview written")
	}

	if unsatisfied > 0 {
		os.Exit(1)
	}
}

func mergeAssignments(results []*domain.FillResult) domain.Assignment {
	merged := domain.Assignment{}
	for _, res := range results {
		for c, t := range res.Assignments {
			merged[c] = t
		}
	}
	return merged
}
