// Command debug_goals prints a player's archived goals so they can be
// checked against the Redis scorer leaderboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func main() {
	country := flag.String("country", "", "team country")
	player := flag.String("player", "", "player name")
	flag.Parse()
	if *country == "" || *player == "" {
		log.Fatal("usage: debug_goals -country Egypt -player 'M. Salah'")
	}

	chURL := os.Getenv("CLICKHOUSE_URL")
	if chURL == "" {
		chURL = "clickhouse://localhost:9000/cup_stats"
	}

	opts, err := clickhouse.ParseDSN(chURL)
	if err != nil {
		log.Fatalf("Failed to parse DSN: %v", err)
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open connection: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()

	var goals, runs uint64
	err = conn.QueryRow(ctx, `
		SELECT count() AS goals, uniqExact(run_id) AS runs
		FROM cup_stats.goal_events
		WHERE team = ? AND player = ?
	`, *country, *player).Scan(&goals, &runs)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	fmt.Printf("%s (%s): %d goals across %d tournaments\n", *player, *country, goals, runs)

	rows, err := conn.Query(ctx, `
		SELECT stage, opponent, minute
		FROM cup_stats.goal_events
		WHERE team = ? AND player = ?
		ORDER BY timestamp DESC, minute
		LIMIT 20
	`, *country, *player)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stage, opponent string
		var minute uint8
		if err := rows.Scan(&stage, &opponent, &minute); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("  %-14s vs %-16s %d'\n", stage, opponent, minute)
	}
}
