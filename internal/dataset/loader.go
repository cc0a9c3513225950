package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"hoopsight/pkg/contracts/domain"
)

// Fixed input names under the data directory. Three datasets ship as a zip
// archive holding a single CSV member of the same base name.
const (
	PlayersFile    = "players.csv"
	TeamsFile      = "teams.csv"
	GamesArchive   = "games.csv.zip"
	GamesMember    = "games.csv"
	LinesArchive   = "games_details.csv.zip"
	LinesMember    = "games_details.csv"
	RankingArchive = "ranking.csv.zip"
	RankingMember  = "ranking.csv"
)

// Loader binds the five input files into raw records. It is pure I/O plus
// schema binding: no cell values are transformed here.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a loader rooted at the data directory.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:    dir,
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

// Dir returns the data directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads all five datasets. The files are independent, so they load
// concurrently; the first failure cancels the rest and is returned as a
// fatal startup error naming the offending file.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	ds := &Dataset{Dir: l.dir}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.Players, err = l.loadPlayers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Teams, err = l.loadTeams(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Games, err = l.loadGames(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Lines, err = l.loadLines(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Standings, err = l.loadStandings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.LoadedAt = time.Now()
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dir", l.dir),
		slog.Int("players", len(ds.Players)),
		slog.Int("teams", len(ds.Teams)),
		slog.Int("games", len(ds.Games)),
		slog.Int("lines", len(ds.Lines)),
		slog.Int("standings", len(ds.Standings)),
		slog.Duration("elapsed", time.Since(start)))
	return ds, nil
}

// openPlain opens an uncompressed input file.
func (l *Loader) openPlain(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// readInput parses one input into a table, transparently unwrapping the zip
// archive when member is non empty.
func (l *Loader) readInput(name, member string) (*table, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if member == "" {
		rc, err = l.openPlain(name)
	} else {
		rc, err = openArchiveCSV(filepath.Join(l.dir, name), member)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := readTable(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

func (l *Loader) loadPlayers(ctx context.Context) ([]domain.Player, error) {
	t, err := l.readInput(PlayersFile, "")
	if err != nil {
		return nil, err
	}
	if err := t.require("PLAYER_ID", "PLAYER_NAME"); err != nil {
		return nil, fmt.Errorf("%s: %w", PlayersFile, err)
	}

	// The source file repeats players once per team season. The reference
	// table is keyed by player id, so the first occurrence wins.
	players := make([]domain.Player, 0, len(t.rows))
	seen := make(map[int64]struct{}, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		id, ok := t.intCell(row, "PLAYER_ID")
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		players = append(players, domain.Player{
			ID:   id,
			Name: t.cell(row, "PLAYER_NAME"),
		})
	}
	l.logTable(ctx, PlayersFile, len(players), skipped)
	return players, nil
}

func (l *Loader) loadTeams(ctx context.Context) ([]domain.Team, error) {
	t, err := l.readInput(TeamsFile, "")
	if err != nil {
		return nil, err
	}
	if err := t.require("TEAM_ID", "NICKNAME", "CITY"); err != nil {
		return nil, fmt.Errorf("%s: %w", TeamsFile, err)
	}

	teams := make([]domain.Team, 0, len(t.rows))
	seen := make(map[int64]struct{}, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		id, ok := t.intCell(row, "TEAM_ID")
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		teams = append(teams, domain.Team{
			ID:       id,
			Nickname: t.cell(row, "NICKNAME"),
			City:     t.cell(row, "CITY"),
		})
	}
	l.logTable(ctx, TeamsFile, len(teams), skipped)
	return teams, nil
}

func (l *Loader) loadGames(ctx context.Context) ([]GameRecord, error) {
	t, err := l.readInput(GamesArchive, GamesMember)
	if err != nil {
		return nil, err
	}
	if err := t.require("GAME_ID", "SEASON", "HOME_TEAM_ID", "PTS_home", "PTS_away"); err != nil {
		return nil, fmt.Errorf("%s: %w", GamesMember, err)
	}

	games := make([]GameRecord, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		season, ok := t.intCell(row, "SEASON")
		if !ok {
			skipped++
			continue
		}
		home, ok := t.intCell(row, "HOME_TEAM_ID")
		if !ok {
			skipped++
			continue
		}
		gameID, _ := t.intCell(row, "GAME_ID")
		visitor, _ := t.intCell(row, "VISITOR_TEAM_ID")
		games = append(games, GameRecord{
			GameID:        gameID,
			Date:          t.cell(row, "GAME_DATE_EST"),
			Season:        int(season),
			HomeTeamID:    home,
			VisitorTeamID: visitor,
			PtsHome:       t.cell(row, "PTS_home"),
			PtsAway:       t.cell(row, "PTS_away"),
		})
	}
	l.logTable(ctx, GamesMember, len(games), skipped)
	return games, nil
}

func (l *Loader) loadLines(ctx context.Context) ([]LineRecord, error) {
	t, err := l.readInput(LinesArchive, LinesMember)
	if err != nil {
		return nil, err
	}
	if err := t.require("GAME_ID", "PLAYER_ID", "MIN", "PTS", "AST", "REB"); err != nil {
		return nil, fmt.Errorf("%s: %w", LinesMember, err)
	}

	lines := make([]LineRecord, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		playerID, ok := t.intCell(row, "PLAYER_ID")
		if !ok {
			skipped++
			continue
		}
		gameID, _ := t.intCell(row, "GAME_ID")
		teamID, _ := t.intCell(row, "TEAM_ID")
		lines = append(lines, LineRecord{
			GameID:   gameID,
			TeamID:   teamID,
			PlayerID: playerID,
			Min:      t.cell(row, "MIN"),
			Pts:      t.cell(row, "PTS"),
			Ast:      t.cell(row, "AST"),
			Reb:      t.cell(row, "REB"),
		})
	}
	l.logTable(ctx, LinesMember, len(lines), skipped)
	return lines, nil
}

func (l *Loader) loadStandings(ctx context.Context) ([]domain.Standing, error) {
	t, err := l.readInput(RankingArchive, RankingMember)
	if err != nil {
		return nil, err
	}
	if err := t.require("TEAM_ID", "SEASON_ID", "CONFERENCE", "W", "L", "W_PCT"); err != nil {
		return nil, fmt.Errorf("%s: %w", RankingMember, err)
	}

	standings := make([]domain.Standing, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		teamID, ok := t.intCell(row, "TEAM_ID")
		if !ok {
			skipped++
			continue
		}
		seasonID, ok := t.intCell(row, "SEASON_ID")
		if !ok {
			skipped++
			continue
		}
		wins, _ := t.intCell(row, "W")
		losses, _ := t.intCell(row, "L")
		games, _ := t.intCell(row, "G")
		standings = append(standings, domain.Standing{
			TeamID:     teamID,
			SeasonID:   int(seasonID),
			Conference: domain.Conference(t.cell(row, "CONFERENCE")),
			Games:      int(games),
			Wins:       int(wins),
			Losses:     int(losses),
			WinPct:     t.floatCell(row, "W_PCT"),
		})
	}
	l.logTable(ctx, RankingMember, len(standings), skipped)
	return standings, nil
}

func (l *Loader) logTable(ctx context.Context, name string, rows, skipped int) {
	if skipped > 0 {
		l.logger.WarnContext(ctx, "table bound with unusable rows",
			slog.String("file", name),
			slog.Int("rows", rows),
			slog.Int("skipped", skipped))
		return
	}
	l.logger.DebugContext(ctx, "table bound",
		slog.String("file", name),
		slog.Int("rows", rows))
}
