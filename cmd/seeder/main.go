// Command seeder registers a sample field of eight teams through the API
// and optionally plays a tournament over them.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

var sampleField = []models.RegisterTeamRequest{
	{Country: "Senegal", Manager: "Aliou Cissé"},
	{Country: "Morocco", Manager: "Walid Regragui"},
	{Country: "Nigeria", Manager: "José Peseiro"},
	{Country: "Egypt", Manager: "Rui Vitória"},
	{Country: "Ivory Coast", Manager: "Emerse Faé"},
	{Country: "Cameroon", Manager: "Rigobert Song"},
	{Country: "Ghana", Manager: "Chris Hughton"},
	{Country: "Algeria", Manager: "Djamel Belmadi"},
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080/api/v1", "API base URL")
	play := flag.Bool("run", false, "run a tournament after seeding")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	client := &http.Client{Timeout: 30 * time.Second}

	for _, team := range sampleField {
		status, body, err := post(client, *apiURL+"/teams", team)
		if err != nil {
			log.Fatalw("Request failed", "team", team.Country, "error", err)
		}
		switch status {
		case http.StatusCreated:
			log.Infow("✅ Registered", "team", team.Country)
		case http.StatusConflict:
			log.Infow("Already registered", "team", team.Country)
		default:
			log.Warnw("❌ Registration failed", "team", team.Country, "status", status, "body", body)
		}
	}

	status, body, err := post(client, *apiURL+"/teams/backfill", nil)
	if err != nil {
		log.Fatalw("Backfill request failed", "error", err)
	}
	log.Infow("Backfill", "status", status, "response", body)

	if !*play {
		return
	}
	status, body, err = post(client, *apiURL+"/tournament/run", nil)
	if err != nil {
		log.Fatalw("Run request failed", "error", err)
	}
	if status != http.StatusOK {
		log.Fatalw("❌ Tournament failed", "status", status, "body", body)
	}

	var out models.TournamentOutcome
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		log.Fatalw("Unreadable outcome", "error", err)
	}
	for _, m := range out.Matches {
		fmt.Printf("%-14s %s %d-%d %s\n", m.Stage, m.TeamA, m.ScoreA, m.ScoreB, m.TeamB)
	}
	fmt.Printf("🏆 %s (runner-up %s)\n", out.Champion.Country, out.RunnerUp.Country)
}

func post(client *http.Client, url string, payload any) (int, string, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, "", err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b), nil
}
