package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/younisbosefi/younosomy/internal/state"
)

// Entry is one finished game on the scoreboard.
type Entry struct {
	ID             string    `db:"id"`
	GameID         string    `db:"game_id"`
	CountryID      string    `db:"country_id"`
	CountryName    string    `db:"country_name"`
	Outcome        string    `db:"outcome"`
	FinalScore     float64   `db:"final_score"`
	FinalDay       int       `db:"final_day"`
	TotalDays      int       `db:"total_days"`
	FinalGDP       float64   `db:"final_gdp"`
	FinalHappiness float64   `db:"final_happiness"`
	FinalDebtRatio float64   `db:"final_debt_ratio"`
	RecordedAt     time.Time `db:"recorded_at"`
}

// EntryFor summarizes s for the scoreboard.
func EntryFor(s state.WorldState, id string, at time.Time) Entry {
	return Entry{
		ID:             id,
		GameID:         s.GameID,
		CountryID:      s.Country.ID,
		CountryName:    s.Country.Name,
		Outcome:        string(s.Outcome),
		FinalScore:     s.Score,
		FinalDay:       s.CurrentDay,
		TotalDays:      s.TotalDays,
		FinalGDP:       s.GDP,
		FinalHappiness: s.Happiness,
		FinalDebtRatio: s.DebtToGDPRatio,
		RecordedAt:     at.UTC(),
	}
}

// RecordScore adds e to the scoreboard.
func (db *DB) RecordScore(e Entry) error {
	_, err := db.conn.NamedExec(`INSERT INTO scoreboard
		(id, game_id, country_id, country_name, outcome, final_score, final_day, total_days,
		 final_gdp, final_happiness, final_debt_ratio, recorded_at)
		VALUES (:id, :game_id, :country_id, :country_name, :outcome, :final_score, :final_day, :total_days,
		 :final_gdp, :final_happiness, :final_debt_ratio, :recorded_at)`, e)
	if err != nil {
		return fmt.Errorf("record score for %s: %w", e.GameID, err)
	}
	slog.Info("score recorded", "game", e.GameID, "country", e.CountryID, "score", e.FinalScore)
	return nil
}

// Leaderboard returns the best limit entries, highest score first.
func (db *DB) Leaderboard(limit int) ([]Entry, error) {
	var out []Entry
	err := db.conn.Select(&out, db.conn.Rebind(`SELECT id, game_id, country_id, country_name, outcome, final_score,
		final_day, total_days, final_gdp, final_happiness, final_debt_ratio, recorded_at
		FROM scoreboard ORDER BY final_score DESC, recorded_at ASC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return out, nil
}
