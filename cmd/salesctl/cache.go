package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Shivarajkushals/Dashboard/internal/cache"
	"github.com/Shivarajkushals/Dashboard/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

const statsSampleSize = 20

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the summary cache",
		Subcommands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show Redis counters and a sample of keys",
				Flags: []cli.Flag{
					newRedisURLFlag(),
					&cli.IntFlag{Name: "sample", Value: statsSampleSize, Usage: "Number of keys to list"},
				},
				Action: func(c *cli.Context) error {
					client, err := redisFrom(c)
					if err != nil {
						return err
					}
					defer client.Close()

					stats, err := cache.Inspect(c.Context, client, c.Int("sample"))
					if err != nil {
						return err
					}
					renderStats(c.App.Writer, stats)
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Drop cached dashboard payloads, keys containing --pattern, or the whole database",
				Flags: []cli.Flag{
					newRedisURLFlag(),
					&cli.StringFlag{Name: "pattern", Usage: "Substring of the keys to delete"},
					&cli.BoolFlag{Name: "flush", Usage: "Flush the whole cache database"},
				},
				Action: func(c *cli.Context) error {
					client, err := redisFrom(c)
					if err != nil {
						return err
					}
					defer client.Close()

					pattern := c.String("pattern")
					if pattern == "" && !c.Bool("flush") {
						if err := cache.NewRedisSalesCache(client, config.Load().Cache).InvalidateAll(c.Context); err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, "Dropped cached dashboard payloads")
						return nil
					}

					n, err := cache.Clear(c.Context, client, pattern)
					if err != nil {
						return err
					}
					if n < 0 {
						fmt.Fprintln(c.App.Writer, "Flushed the cache database")
					} else {
						fmt.Fprintf(c.App.Writer, "Deleted %d keys\n", n)
					}
					return nil
				},
			},
		},
	}
}

func redisFrom(c *cli.Context) (*redis.Client, error) {
	cfg := config.Load().Cache
	if url := c.String("redis-url"); url != "" {
		cfg.RedisURL = url
	}
	return cache.NewRedisClient(cfg)
}

var labelStyle = lipgloss.NewStyle().Bold(true)

func renderStats(w io.Writer, s cache.Stats) {
	line := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", label)), value)
	}
	line("Connected clients", strconv.FormatInt(s.ConnectedClients, 10))
	line("Used memory", s.UsedMemoryHuman)
	line("Keys", strconv.FormatInt(s.Keys, 10))
	line("Hits", strconv.FormatInt(s.Hits, 10))
	line("Misses", strconv.FormatInt(s.Misses, 10))
	line("Hit rate", fmt.Sprintf("%.2f%%", s.HitRate()))

	if len(s.Sample) == 0 {
		return
	}
	t := table.New().Headers("Key", "TTL")
	for _, k := range s.Sample {
		t.Row(k.Key, ttlLabel(k))
	}
	fmt.Fprintln(w, t.Render())
}

func ttlLabel(k cache.KeyTTL) string {
	switch {
	case k.TTL == -2:
		return "missing"
	case k.TTL < 0:
		return "no expiry"
	default:
		return k.TTL.String()
	}
}
