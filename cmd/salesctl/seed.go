package main

import (
	"fmt"

	"github.com/Shivarajkushals/Dashboard/internal/ingest"
	"github.com/urfave/cli/v2"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load daily sales lines from CSV or XLSX files",
		Flags: []cli.Flag{
			newDBURLFlag(),
			&cli.StringSliceFlag{
				Name:     "file",
				Usage:    "Input file, repeatable",
				Required: true,
			},
			&cli.IntFlag{Name: "batch-size", Value: ingest.DefaultBatchSize},
			&cli.IntFlag{Name: "workers", Value: ingest.DefaultWorkers},
			&cli.BoolFlag{Name: "truncate", Usage: "Empty the table before loading"},
		},
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			db, err := dbFrom(c)
			if err != nil {
				return err
			}

			if c.Bool("truncate") {
				if _, err := db.ExecContext(c.Context, "TRUNCATE TABLE "+ingest.Table); err != nil {
					return fmt.Errorf("truncate %s: %w", ingest.Table, err)
				}
			}

			loader := ingest.NewLoader(db, c.Int("batch-size"), c.Int("workers"))
			res, err := loader.LoadFiles(c.Context, c.StringSlice("file"))
			fmt.Fprintf(c.App.Writer, "Loaded %d rows from %d files, %d rows rejected\n",
				res.Rows, res.Files, len(res.Rejected))
			return err
		},
	}
}
